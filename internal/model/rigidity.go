package model

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/section"
)

// Rigidity modes
const (
	EIDirect     = "direct"
	EIMultiplier = "multiplier"
	EISeparate   = "separate"
	EISection    = "section"
)

// Rigidity describes how the flexural (and axial) rigidity of a span or
// member is obtained.
//
//	direct      EI in kN·m²
//	multiplier  EIMultiplier x document default EI
//	separate    E in GPa, I in mm⁴, optional A in mm²
//	section     E in GPa with I and A from a polygon section in mm
type Rigidity struct {
	Mode       string           `json:"eiMode,omitempty"`
	EI         float64          `json:"ei,omitempty"`
	Multiplier float64          `json:"eiMultiplier,omitempty"`
	E          float64          `json:"e,omitempty"`
	I          float64          `json:"i,omitempty"`
	A          float64          `json:"a,omitempty"`
	Section    *section.Section `json:"section,omitempty"`
}

// mode resolves an empty Mode from the fields that are set
func (r Rigidity) mode() string {
	if r.Mode != "" {
		return r.Mode
	}
	switch {
	case r.EI > 0:
		return EIDirect
	case r.E > 0 && r.Section != nil:
		return EISection
	case r.E > 0 && r.I > 0:
		return EISeparate
	}
	return EIMultiplier
}

// Resolve returns EI in kN·m² and EA in kN. EA is zero when the mode
// carries no area; callers substitute their own approximation.
func (r Rigidity) Resolve(defaultEI float64) (ei, ea float64, err error) {
	switch mode := r.mode(); mode {
	case EIDirect:
		ei = r.EI
	case EIMultiplier:
		m := r.Multiplier
		if m == 0 {
			m = 1
		}
		if defaultEI <= 0 {
			return 0, 0, fmt.Errorf("multiplier rigidity needs a positive document defaultEI")
		}
		ei = m * defaultEI
	case EISeparate:
		if r.E <= 0 || r.I <= 0 {
			return 0, 0, fmt.Errorf("separate rigidity needs positive e and i (got e=%g, i=%g)", r.E, r.I)
		}
		// GPa x mm⁴ -> kN·m²; GPa x mm² -> kN
		ei = r.E * r.I * 1e-6
		if r.A > 0 {
			ea = r.E * r.A
		}
	case EISection:
		if r.Section == nil {
			return 0, 0, fmt.Errorf("section rigidity needs a section")
		}
		if r.E <= 0 {
			return 0, 0, fmt.Errorf("section rigidity needs a positive e (got %g)", r.E)
		}
		if err := r.Section.Validate(); err != nil {
			return 0, 0, fmt.Errorf("section %q: %w", r.Section.Name, err)
		}
		props := r.Section.CalculateProperties()
		ei = r.E * props.Ixx * 1e-6
		ea = r.E * props.Area
	default:
		return 0, 0, fmt.Errorf("unknown eiMode %q", mode)
	}
	if ei <= 0 || !finite(ei) {
		return 0, 0, fmt.Errorf("effective EI must be positive and finite (got %g)", ei)
	}
	if !finite(ea) {
		return 0, 0, fmt.Errorf("effective EA must be finite (got %g)", ea)
	}
	return ei, ea, nil
}
