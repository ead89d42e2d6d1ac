package beam

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/fem"
)

// shearAt is the running shear at local position x of a span whose left
// end shear is vi
func (sp span) shearAt(vi, x float64) float64 {
	v := vi
	for _, l := range sp.loads {
		v -= fem.ShearAt(l, x)
	}
	return v
}

// momentAt is the sagging moment at local position x of a span with
// clockwise start moment mij and left end shear vi
func (sp span) momentAt(mij, vi, x float64) float64 {
	m := mij + vi*x
	for _, l := range sp.loads {
		m -= fem.MomentAt(l, x)
	}
	return m
}

// deflectionAt is a visualization estimate, not an elastic curve: the
// chord between the support settlements plus a parabola whose midspan
// ordinate follows from the midspan and end moments
func (a *arena) deflectionAt(sp span, r SpanResult, x float64) float64 {
	t := x / sp.length
	si, sj := a.nodes[sp.i].settlement, a.nodes[sp.j].settlement
	mMid := sp.momentAt(r.MomentStart, r.ShearStart, sp.length/2)
	mi, mj := r.MomentStart, -r.MomentEnd
	mid := 5 * sp.length * sp.length / (48 * sp.ei) * (mMid - 0.1*(mi+mj))
	return si + (sj-si)*t + mid*4*t*(1-t)
}

// diagram samples shear, moment and deflection evenly over the beam
func (a *arena) diagram(spans []SpanResult) []Sample {
	if len(a.spans) == 0 {
		return nil
	}
	x0 := a.spans[0].offset
	total := a.length()
	out := make([]Sample, DiagramSamples)
	k := 0
	for n := range out {
		X := x0 + total*float64(n)/float64(DiagramSamples-1)
		for k < len(a.spans)-1 && X > a.spans[k].offset+a.spans[k].length+1e-12 {
			k++
		}
		sp, r := a.spans[k], spans[k]
		x := math.Min(math.Max(X-sp.offset, 0), sp.length)
		out[n] = Sample{
			X:          X,
			Shear:      sp.shearAt(r.ShearStart, x),
			Moment:     sp.momentAt(r.MomentStart, r.ShearStart, x),
			Deflection: a.deflectionAt(sp, r, x),
		}
	}
	return out
}
