package fem

import (
	"fmt"
	"math"
)

// Resultant returns the total downward force of a load and the position of
// its line of action. A couple has no resultant force.
func Resultant(l Load) (force, at float64) {
	switch v := l.(type) {
	case Point:
		return v.P, v.A
	case Uniform:
		length := v.End - v.Start
		if length <= 0 {
			return 0, v.Start
		}
		return v.W * length, (v.Start + v.End) / 2
	case Varying:
		length := v.End - v.Start
		if length <= 0 {
			return 0, v.Start
		}
		force = (v.W1 + v.W2) / 2 * length
		if force == 0 {
			return 0, v.Start
		}
		return force, v.Start + momentAboutStart(v)/force
	case Moment:
		return 0, v.A
	default:
		panic(fmt.Errorf("fem: unknown load type %T", l))
	}
}

// momentAboutStart is the first moment of a varying load about its own start
func momentAboutStart(v Varying) float64 {
	length := v.End - v.Start
	k := (v.W2 - v.W1) / length
	return v.W1*length*length/2 + k*length*length*length/3
}

// SimpleReactions returns the upward end reactions of a simply supported
// span of length L carrying the load
func SimpleReactions(l Load, L float64) (ri, rj float64) {
	if L <= 0 {
		return 0, 0
	}
	switch v := l.(type) {
	case Moment:
		return v.M / L, -v.M / L
	case Varying:
		length := v.End - v.Start
		if length <= 0 {
			return 0, 0
		}
		force := (v.W1 + v.W2) / 2 * length
		rj = (force*v.Start + momentAboutStart(v)) / L
		return force - rj, rj
	default:
		force, at := Resultant(l)
		rj = force * at / L
		return force - rj, rj
	}
}

// ShearAt returns the downward force of the part of the load lying left of
// section x. Subtract it from the end shear to get the running shear.
func ShearAt(l Load, x float64) float64 {
	switch v := l.(type) {
	case Point:
		if v.A < x {
			return v.P
		}
		return 0
	case Uniform:
		return v.W * covered(v.Start, v.End, x)
	case Varying:
		u := covered(v.Start, v.End, x)
		if u == 0 {
			return 0
		}
		k := (v.W2 - v.W1) / (v.End - v.Start)
		return v.W1*u + k*u*u/2
	case Moment:
		return 0
	default:
		panic(fmt.Errorf("fem: unknown load type %T", l))
	}
}

// MomentAt returns the sagging moment removed at section x by the part of
// the load lying left of x
func MomentAt(l Load, x float64) float64 {
	switch v := l.(type) {
	case Point:
		if v.A < x {
			return v.P * (x - v.A)
		}
		return 0
	case Uniform:
		u := covered(v.Start, v.End, x)
		return v.W * u * (x - v.Start - u/2)
	case Varying:
		u := covered(v.Start, v.End, x)
		if u == 0 {
			return 0
		}
		k := (v.W2 - v.W1) / (v.End - v.Start)
		d := x - v.Start
		return d*(v.W1*u+k*u*u/2) - (v.W1*u*u/2 + k*u*u*u/3)
	case Moment:
		if v.A < x {
			return v.M
		}
		return 0
	default:
		panic(fmt.Errorf("fem: unknown load type %T", l))
	}
}

// covered is the length of [start, end] lying left of x
func covered(start, end, x float64) float64 {
	if end-start <= 0 || x <= start {
		return 0
	}
	return math.Min(x, end) - start
}
