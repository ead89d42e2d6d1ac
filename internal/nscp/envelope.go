package nscp

import (
	"math"
	"sync"

	"github.com/alexiusacademia/goframe/internal/beam"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/model"
)

// CaseResult is the outcome of one combination of an envelope
type CaseResult struct {
	Combo     LoadCombination `json:"combo"`
	MaxMoment float64         `json:"maxMoment"`
	MaxShear  float64         `json:"maxShear"`
	Beam      *beam.Result    `json:"beam,omitempty"`
	Frame     *frame.Result   `json:"frame,omitempty"`
}

// Envelope holds every combination result and the governing one, the
// combination with the largest moment magnitude
type Envelope struct {
	Cases     []CaseResult `json:"cases"`
	Governing int          `json:"governing"`
}

// GoverningCase returns the governing combination result
func (e *Envelope) GoverningCase() CaseResult {
	return e.Cases[e.Governing]
}

// BeamEnvelope solves the beam for every combination concurrently, each
// with its own solver
func BeamEnvelope(doc *model.BeamDocument, combos []LoadCombination) (*Envelope, error) {
	return run(combos, func(lc LoadCombination) (CaseResult, error) {
		factored, err := ApplyBeam(doc, lc)
		if err != nil {
			return CaseResult{}, err
		}
		res, err := beam.NewSolver(factored).Solve()
		if err != nil {
			return CaseResult{}, err
		}
		return CaseResult{
			Combo:     lc,
			MaxMoment: res.Summary.MaxMoment,
			MaxShear:  res.Summary.MaxShear,
			Beam:      res,
		}, nil
	})
}

// FrameEnvelope solves the frame for every combination concurrently
func FrameEnvelope(doc *model.FrameDocument, combos []LoadCombination) (*Envelope, error) {
	return run(combos, func(lc LoadCombination) (CaseResult, error) {
		factored, err := ApplyFrame(doc, lc)
		if err != nil {
			return CaseResult{}, err
		}
		res, err := frame.NewSolver(factored).Solve()
		if err != nil {
			return CaseResult{}, err
		}
		return CaseResult{
			Combo:     lc,
			MaxMoment: res.Summary.MaxMoment,
			MaxShear:  res.Summary.MaxShear,
			Frame:     res,
		}, nil
	})
}

// run solves one goroutine per combination. The error of the earliest
// failing combination is returned as is.
func run(combos []LoadCombination, solve func(LoadCombination) (CaseResult, error)) (*Envelope, error) {
	if len(combos) == 0 {
		return nil, model.Inputf("no load combinations given")
	}
	cases := make([]CaseResult, len(combos))
	errs := make([]error, len(combos))

	var wg sync.WaitGroup
	for k, lc := range combos {
		wg.Add(1)
		go func(k int, lc LoadCombination) {
			defer wg.Done()
			cases[k], errs[k] = solve(lc)
		}(k, lc)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	env := &Envelope{Cases: cases}
	for k, c := range cases {
		if math.Abs(c.MaxMoment) > math.Abs(cases[env.Governing].MaxMoment) {
			env.Governing = k
		}
	}
	return env, nil
}
