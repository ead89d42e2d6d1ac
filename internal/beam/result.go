package beam

import "github.com/alexiusacademia/goframe/internal/calclog"

// Result holds the complete output of a continuous beam analysis.
//
// Moments follow two conventions: span end moments (MomentStart, MomentEnd,
// FEMStart, FEMEnd) are clockwise-positive member end moments as used by
// the slope-deflection equations, diagram moments are sagging-positive.
// Forces are in kN, moments in kN·m, rotations in rad (clockwise), and
// deflections in m (downward).
type Result struct {
	Name      string         `json:"name,omitempty"`
	Rotations []NodeRotation `json:"rotations"`
	Spans     []SpanResult   `json:"spans"`
	Reactions []Reaction     `json:"reactions"`
	Diagram   []Sample       `json:"diagram"`
	Summary   Summary        `json:"summary"`
	Log       *calclog.Log   `json:"log"`
}

// NodeRotation is the solved joint rotation of a node
type NodeRotation struct {
	Node     string  `json:"node"`
	Rotation float64 `json:"rotation"`
	Unknown  bool    `json:"unknown"` // solved for, as opposed to restrained
}

// SpanResult holds the end actions of one span
type SpanResult struct {
	ID          string  `json:"id"`
	Start       string  `json:"start"` // left node
	End         string  `json:"end"`   // right node
	Length      float64 `json:"length"`
	EI          float64 `json:"ei"`
	FEMStart    float64 `json:"femStart"`
	FEMEnd      float64 `json:"femEnd"`
	MomentStart float64 `json:"momentStart"`
	MomentEnd   float64 `json:"momentEnd"`
	ShearStart  float64 `json:"shearStart"` // just right of the left node
	ShearEnd    float64 `json:"shearEnd"`   // just left of the right node
	Cantilever  bool    `json:"cantilever,omitempty"`
}

// Reaction is the support reaction at a node other than a cantilever tip.
// Force is upward positive, Moment clockwise positive and only present at
// fixed supports.
type Reaction struct {
	Node    string  `json:"node"`
	Support string  `json:"support"`
	Force   float64 `json:"force"`
	Moment  float64 `json:"moment"`
}

// Sample is one point of the beam diagrams
type Sample struct {
	X          float64 `json:"x"`
	Shear      float64 `json:"shear"`
	Moment     float64 `json:"moment"`
	Deflection float64 `json:"deflection"`
}

// Summary holds the governing values of the analysis
type Summary struct {
	MaxMoment       float64 `json:"maxMoment"`
	MaxMomentAt     float64 `json:"maxMomentAt"`
	MaxShear        float64 `json:"maxShear"`
	MaxShearAt      float64 `json:"maxShearAt"`
	MaxDeflection   float64 `json:"maxDeflection"`
	MaxDeflectionAt float64 `json:"maxDeflectionAt"`
	TotalLoad       float64 `json:"totalLoad"`
	TotalReaction   float64 `json:"totalReaction"`
}

// Series returns the diagram samples as separate x and value slices for
// the named quantity: "shear", "moment" or "deflection"
func (r *Result) Series(quantity string) (xs, ys []float64) {
	xs = make([]float64, len(r.Diagram))
	ys = make([]float64, len(r.Diagram))
	for k, s := range r.Diagram {
		xs[k] = s.X
		switch quantity {
		case "shear":
			ys[k] = s.Shear
		case "moment":
			ys[k] = s.Moment
		case "deflection":
			ys[k] = s.Deflection
		}
	}
	return xs, ys
}
