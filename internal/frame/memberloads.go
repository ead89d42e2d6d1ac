package frame

import (
	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/linalg"
)

// fixedEndForces adapts the span fixed-end moments to a member: the end
// reactions of the loads, acting along -y local, as a local end vector.
//
// Clockwise fixed-end moments become counter-clockwise end moments by a
// sign flip; the end shears are the simple-span reactions corrected by the
// end moments.
func (e *element) fixedEndForces() linalg.Vector {
	f := make(linalg.Vector, 6)
	L := e.length
	for _, l := range e.loads {
		ms, me := fem.FixedEndMoments(l, L)
		ri, rj := fem.SimpleReactions(l, L)
		corr := (ms + me) / L
		f[1] += ri - corr
		f[2] -= ms
		f[4] += rj + corr
		f[5] -= me
	}
	return f
}

// loadResultant returns the global x and y components of the member
// loads
func (e *element) loadResultant() (fx, fy float64) {
	for _, l := range e.loads {
		p, _ := fem.Resultant(l)
		// -y local is (s, -c) in global components
		fx += p * e.s
		fy -= p * e.c
	}
	return fx, fy
}
