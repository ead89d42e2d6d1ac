package fem

import (
	"fmt"
	"math"
)

const (
	// partialUniformSegments is the number of midpoint segments used for a
	// partial uniform load
	partialUniformSegments = 20
)

// gauss10 holds the 10-point Gauss-Legendre abscissae and weights on [-1, 1]
var gauss10 = [10][2]float64{
	{-0.9739065285171717, 0.0666713443086881},
	{-0.8650633666889845, 0.1494513491505806},
	{-0.6794095682990244, 0.2190863625159820},
	{-0.4333953941292472, 0.2692667193099963},
	{-0.1488743389816312, 0.2955242247147529},
	{0.1488743389816312, 0.2955242247147529},
	{0.4333953941292472, 0.2692667193099963},
	{0.6794095682990244, 0.2190863625159820},
	{0.8650633666889845, 0.1494513491505806},
	{0.9739065285171717, 0.0666713443086881},
}

// FixedEndMoments returns (femStart, femEnd) of a load on a span of length L
func FixedEndMoments(l Load, L float64) (start, end float64) {
	if L <= 0 {
		return 0, 0
	}
	switch v := l.(type) {
	case Point:
		return PointFEM(v.P, v.A, L)
	case Uniform:
		return UniformFEM(v.W, v.Start, v.End, L)
	case Varying:
		return VaryingFEM(v.W1, v.W2, v.Start, v.End, L)
	case Moment:
		return MomentFEM(v.M, v.A, L)
	default:
		panic(fmt.Errorf("fem: unknown load type %T", l))
	}
}

// PointFEM gives the fixed-end moments of a point load P at a
func PointFEM(P, a, L float64) (start, end float64) {
	if L <= 0 {
		return 0, 0
	}
	b := L - a
	start = -P * a * b * b / (L * L)
	end = P * a * a * b / (L * L)
	return
}

// UniformFEM gives the fixed-end moments of a uniform load w over [a, b].
// A partial load is integrated with 20 midpoint segments, each treated as
// an equivalent point load.
func UniformFEM(w, a, b, L float64) (start, end float64) {
	if L <= 0 || b-a <= 0 {
		return 0, 0
	}
	if fullSpan(a, b, L) {
		return -w * L * L / 12, w * L * L / 12
	}
	seg := (b - a) / partialUniformSegments
	for i := 0; i < partialUniformSegments; i++ {
		x := a + (float64(i)+0.5)*seg
		s, e := PointFEM(w*seg, x, L)
		start += s
		end += e
	}
	return
}

// VaryingFEM gives the fixed-end moments of a linearly varying load from
// w1 at a to w2 at b
func VaryingFEM(w1, w2, a, b, L float64) (start, end float64) {
	if L <= 0 || b-a <= 0 {
		return 0, 0
	}
	if fullSpan(a, b, L) {
		rect := math.Min(w1, w2)
		tri := math.Abs(w2 - w1)
		start = -rect * L * L / 12
		end = rect * L * L / 12
		if w2 >= w1 {
			// peak at the end
			start -= tri * L * L / 30
			end += tri * L * L / 20
		} else {
			start -= tri * L * L / 20
			end += tri * L * L / 30
		}
		return
	}

	half := (b - a) / 2
	mid := (a + b) / 2
	for _, g := range gauss10 {
		x := mid + half*g[0]
		w := w1 + (w2-w1)*(x-a)/(b-a)
		start += g[1] * w * (-x * (L - x) * (L - x) / (L * L))
		end += g[1] * w * (x * x * (L - x) / (L * L))
	}
	return start * half, end * half
}

// MomentFEM gives the fixed-end moments of a counter-clockwise couple M at a
func MomentFEM(M, a, L float64) (start, end float64) {
	if L <= 0 {
		return 0, 0
	}
	b := L - a
	start = M * b * (L - 3*a) / (L * L)
	end = M * a * (3*a - L) / (L * L)
	return
}
