// Package fem holds the fixed-end moment formulas and simple-beam statics
// for loads on a prismatic span.
//
// Sign convention: transverse loads are positive downward, fixed-end
// moments are positive clockwise, applied couples are positive
// counter-clockwise. Positions are measured from the start of the span in
// metres.
package fem

// Load is one of Point, Uniform, Varying or Moment
type Load interface {
	isLoad()
}

// Point is a concentrated force P at distance A from the span start
type Point struct {
	P float64 // kN
	A float64 // m
}

// Uniform is a uniformly distributed load W over [Start, End]
type Uniform struct {
	W     float64 // kN/m
	Start float64 // m
	End   float64 // m
}

// Varying is a linearly varying load from W1 at Start to W2 at End
type Varying struct {
	W1    float64 // kN/m
	W2    float64 // kN/m
	Start float64 // m
	End   float64 // m
}

// Moment is an applied couple M at distance A from the span start
type Moment struct {
	M float64 // kN·m
	A float64 // m
}

func (Point) isLoad()   {}
func (Uniform) isLoad() {}
func (Varying) isLoad() {}
func (Moment) isLoad()  {}

// spanTol decides whether a distributed load covers the full span
const spanTol = 1e-9

func fullSpan(start, end, L float64) bool {
	return start <= spanTol && end >= L-spanTol
}
