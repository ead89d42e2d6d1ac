package fem

import (
	"fmt"
	"math"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPointFEMMidspan(t *testing.T) {
	for _, L := range []float64{2, 5, 7.5} {
		P := 40.0
		s, e := PointFEM(P, L/2, L)
		if s != -P*L/8 {
			t.Fatalf("L=%v: femStart = %v, want %v", L, s, -P*L/8)
		}
		if !near(e, P*L/8, 1e-12) {
			t.Fatalf("L=%v: femEnd = %v, want %v", L, e, P*L/8)
		}
		ri, rj := SimpleReactions(Point{P: P, A: L / 2}, L)
		if !near(ri, P/2, 1e-12) || !near(rj, P/2, 1e-12) {
			t.Fatalf("L=%v: reactions = %v, %v", L, ri, rj)
		}
	}
}

func TestFixedEndMoments(t *testing.T) {
	tcs := []struct {
		name       string
		load       Load
		L          float64
		start, end float64
		tol        float64
	}{
		{"udl full", Uniform{W: 10, Start: 0, End: 6}, 6, -30, 30, 1e-3},
		{"triangle peak at end", Varying{W1: 0, W2: 12, Start: 0, End: 5}, 5, -10, 15, 1e-9},
		{"triangle peak at start", Varying{W1: 12, W2: 0, Start: 0, End: 5}, 5, -15, 10, 1e-9},
		{"trapezoid", Varying{W1: 6, W2: 12, Start: 0, End: 5}, 5, -12.5 - 5, 12.5 + 7.5, 1e-9},
		{"partial varying constant", Varying{W1: 10, W2: 10, Start: 0, End: 3}, 6, -20.625, 9.375, 1e-9},
		{"partial uniform", Uniform{W: 10, Start: 0, End: 3}, 6, -20.625, 9.375, 5e-2},
		{"moment at start", Moment{M: 8, A: 0}, 4, 8, 0, 1e-12},
		{"moment at end", Moment{M: 8, A: 4}, 4, 0, 16, 1e-12},
		{"moment at third", Moment{M: 9, A: 2}, 6, 0, 0, 1e-12},
		{"moment at midspan", Moment{M: 10, A: 2.5}, 5, -2.5, 2.5, 1e-12},
		{"zero length udl", Uniform{W: 10, Start: 2, End: 2}, 6, 0, 0, 0},
		{"zero length vdl", Varying{W1: 1, W2: 5, Start: 3, End: 1}, 6, 0, 0, 0},
		{"zero span", Point{P: 10, A: 0}, 0, 0, 0, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s, e := FixedEndMoments(tc.load, tc.L)
			if !near(s, tc.start, tc.tol) || !near(e, tc.end, tc.tol) {
				t.Fatalf("FixedEndMoments = (%v, %v), want (%v, %v)", s, e, tc.start, tc.end)
			}
		})
	}
}

func TestVaryingDegeneratesToUniform(t *testing.T) {
	for _, L := range []float64{1, 3.3, 8, 25} {
		t.Run(fmt.Sprintf("L=%v", L), func(t *testing.T) {
			us, ue := UniformFEM(15, 0, L, L)
			vs, ve := VaryingFEM(15, 15, 0, L, L)
			if !near(us, vs, 1e-2) || !near(ue, ve, 1e-2) {
				t.Fatalf("udl (%v, %v) != vdl (%v, %v)", us, ue, vs, ve)
			}
		})
	}
}

func TestSimpleReactions(t *testing.T) {
	tcs := []struct {
		name   string
		load   Load
		L      float64
		ri, rj float64
	}{
		{"point", Point{P: 30, A: 1}, 4, 22.5, 7.5},
		{"udl", Uniform{W: 10, Start: 0, End: 4}, 4, 20, 20},
		{"partial udl", Uniform{W: 10, Start: 2, End: 4}, 4, 5, 15},
		{"triangle", Varying{W1: 0, W2: 9, Start: 0, End: 6}, 6, 9, 18},
		{"couple", Moment{M: 12, A: 1}, 4, 3, -3},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ri, rj := SimpleReactions(tc.load, tc.L)
			if !near(ri, tc.ri, 1e-9) || !near(rj, tc.rj, 1e-9) {
				t.Fatalf("SimpleReactions = (%v, %v), want (%v, %v)", ri, rj, tc.ri, tc.rj)
			}
		})
	}
}

// The running moment of a simply supported span must close to zero at the
// far support for every load type.
func TestRunningMomentClosesAtEnd(t *testing.T) {
	L := 6.0
	loads := []Load{
		Point{P: 20, A: 2},
		Uniform{W: 5, Start: 1, End: 4},
		Varying{W1: 2, W2: 8, Start: 0, End: 6},
		Moment{M: 10, A: 3},
	}
	for _, l := range loads {
		ri, rj := SimpleReactions(l, L)
		m := ri*L - MomentAt(l, L+1e-12)
		if !near(m, 0, 1e-9) {
			t.Fatalf("%T: moment at end = %v", l, m)
		}
		v := ri - ShearAt(l, L+1e-12)
		if !near(v, -rj, 1e-9) {
			t.Fatalf("%T: shear at end = %v, want %v", l, v, -rj)
		}
	}
}

func TestResultant(t *testing.T) {
	f, at := Resultant(Varying{W1: 0, W2: 6, Start: 1, End: 4})
	if !near(f, 9, 1e-12) || !near(at, 3, 1e-12) {
		t.Fatalf("Resultant = (%v, %v), want (9, 3)", f, at)
	}
	if f, _ := Resultant(Moment{M: 5, A: 1}); f != 0 {
		t.Fatalf("couple resultant = %v", f)
	}
}
