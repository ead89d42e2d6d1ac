package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
)

const tol = 1e-3

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func f64(v float64) *float64 { return &v }

func reaction(t *testing.T, res *Result, id string) Reaction {
	t.Helper()
	for _, r := range res.Reactions {
		if r.Node == id {
			return r
		}
	}
	t.Fatalf("no reaction at node %q", id)
	return Reaction{}
}

func twoSpan() *model.BeamDocument {
	return &model.BeamDocument{
		DefaultEI: 50000,
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportPinned},
			{ID: "B", X: 5, Support: model.SupportPinned},
			{ID: "C", X: 10, Support: model.SupportRoller},
		},
		Spans: []model.Span{
			{ID: "AB", Start: "A", End: "B"},
			{ID: "BC", Start: "B", End: "C"},
		},
		Loads: []model.Load{{Type: model.LoadUDL, Span: "AB", W: 10}},
	}
}

func TestTwoSpanUniformLoad(t *testing.T) {
	res, err := NewSolver(twoSpan()).Solve()
	if err != nil {
		t.Fatal(err)
	}

	if !near(res.Summary.TotalReaction, 50) || !near(res.Summary.TotalLoad, 50) {
		t.Fatalf("reaction %v, load %v, want 50", res.Summary.TotalReaction, res.Summary.TotalLoad)
	}
	// continuous support moment wL²/16
	if got := res.Spans[0].MomentEnd; !near(got, 15.625) {
		t.Errorf("M_BA = %v, want 15.625", got)
	}
	if got := res.Spans[1].MomentStart; !near(got, -15.625) {
		t.Errorf("M_BC = %v, want -15.625", got)
	}
	want := map[string]float64{"A": 21.875, "B": 31.25, "C": -3.125}
	for id, w := range want {
		if got := reaction(t, res, id).Force; !near(got, w) {
			t.Errorf("R_%s = %v, want %v", id, got, w)
		}
	}

	if len(res.Diagram) != DiagramSamples {
		t.Fatalf("diagram has %d samples, want %d", len(res.Diagram), DiagramSamples)
	}
	for _, p := range res.Diagram {
		for _, v := range []float64{p.X, p.Shear, p.Moment, p.Deflection} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite diagram value at x=%v: %+v", p.X, p)
			}
		}
	}
	if res.Log.Len() == 0 {
		t.Fatal("calculation log is empty")
	}
}

func TestFixedFixedUniformLoad(t *testing.T) {
	doc := &model.BeamDocument{
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportFixed},
			{ID: "B", X: 6, Support: model.SupportFixed},
		},
		Spans: []model.Span{{ID: "S", Start: "A", End: "B", Rigidity: model.Rigidity{EI: 20000}}},
		Loads: []model.Load{{Type: model.LoadUDL, Span: "S", W: 10}},
	}
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	sp := res.Spans[0]
	if !near(sp.MomentStart, -30) || !near(sp.MomentEnd, 30) {
		t.Fatalf("end moments = (%v, %v), want (-30, 30)", sp.MomentStart, sp.MomentEnd)
	}
	if mid := res.Diagram[DiagramSamples/2]; !near(mid.X, 3) || !near(mid.Moment, 15) {
		t.Fatalf("midspan sample = %+v, want moment 15 at x=3", mid)
	}
	a, b := reaction(t, res, "A"), reaction(t, res, "B")
	if !near(a.Force, 30) || !near(b.Force, 30) || !near(a.Moment, -30) || !near(b.Moment, 30) {
		t.Fatalf("reactions = %+v %+v", a, b)
	}
	if !near(res.Summary.MaxMoment, -30) {
		t.Fatalf("max moment = %v, want -30", res.Summary.MaxMoment)
	}
}

func TestProppedCantilever(t *testing.T) {
	doc := &model.BeamDocument{
		DefaultEI: 10000,
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportFixed},
			{ID: "B", X: 4, Support: model.SupportRoller},
		},
		Spans: []model.Span{{ID: "S", Start: "A", End: "B"}},
		Loads: []model.Load{{Type: model.LoadUDL, Span: "S", W: 10}},
	}
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Spans[0].MomentStart; !near(got, -20) {
		t.Errorf("M_AB = %v, want -wL²/8 = -20", got)
	}
	if got := res.Spans[0].MomentEnd; !near(got, 0) {
		t.Errorf("M_BA = %v, want 0", got)
	}
	if a, b := reaction(t, res, "A").Force, reaction(t, res, "B").Force; !near(a, 25) || !near(b, 15) {
		t.Errorf("reactions = (%v, %v), want (25, 15)", a, b)
	}
}

func TestCantilevers(t *testing.T) {
	t.Run("fixed root", func(t *testing.T) {
		doc := &model.BeamDocument{
			DefaultEI: 10000,
			Nodes: []model.BeamNode{
				{ID: "A", X: 0, Support: model.SupportFixed},
				{ID: "B", X: 3, Support: model.SupportFree},
			},
			Spans: []model.Span{{ID: "S", Start: "A", End: "B"}},
			Loads: []model.Load{{Type: model.LoadPoint, Span: "S", P: 10, A: 3}},
		}
		res, err := NewSolver(doc).Solve()
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Reactions) != 1 {
			t.Fatalf("got %d reactions, want 1", len(res.Reactions))
		}
		r := res.Reactions[0]
		if !near(r.Force, 10) || !near(r.Moment, -30) {
			t.Fatalf("reaction = %+v, want force 10, moment -30", r)
		}
		if !res.Spans[0].Cantilever || !near(res.Spans[0].MomentEnd, 0) {
			t.Fatalf("span = %+v", res.Spans[0])
		}
	})

	t.Run("overhang", func(t *testing.T) {
		doc := &model.BeamDocument{
			DefaultEI: 10000,
			Nodes: []model.BeamNode{
				{ID: "A", X: 0, Support: model.SupportPinned},
				{ID: "B", X: 4, Support: model.SupportRoller},
				{ID: "C", X: 6, Support: model.SupportFree},
			},
			Spans: []model.Span{
				{ID: "AB", Start: "A", End: "B"},
				{ID: "BC", Start: "B", End: "C"},
			},
			Loads: []model.Load{{Type: model.LoadPoint, Span: "BC", P: 10, A: 2}},
		}
		res, err := NewSolver(doc).Solve()
		if err != nil {
			t.Fatal(err)
		}
		if a, b := reaction(t, res, "A").Force, reaction(t, res, "B").Force; !near(a, -5) || !near(b, 15) {
			t.Fatalf("reactions = (%v, %v), want (-5, 15)", a, b)
		}
		if got := res.Spans[0].MomentEnd + res.Spans[1].MomentStart; !near(got, 0) {
			t.Fatalf("joint B out of balance by %v", got)
		}
		if !near(res.Spans[1].MomentStart, -20) {
			t.Fatalf("root moment = %v, want -20", res.Spans[1].MomentStart)
		}
	})
}

func TestSettlementInducesMoments(t *testing.T) {
	doc := &model.BeamDocument{
		DefaultEI: 50000,
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportFixed},
			{ID: "B", X: 5, Support: model.SupportFixed, Settlement: 0.01},
		},
		Spans: []model.Span{{ID: "S", Start: "A", End: "B"}},
	}
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	// -6EIΔ/L²
	sp := res.Spans[0]
	if !near(sp.MomentStart, -120) || !near(sp.MomentEnd, -120) {
		t.Fatalf("end moments = (%v, %v), want (-120, -120)", sp.MomentStart, sp.MomentEnd)
	}
	if !near(res.Summary.TotalReaction, 0) {
		t.Fatalf("reactions do not balance: %v", res.Summary.TotalReaction)
	}
	if got := res.Diagram[DiagramSamples-1].Deflection; !near(got, 0.01) {
		t.Fatalf("deflection at B = %v, want settlement 0.01", got)
	}
}

func TestSettlementTermNeedsFixedFarEnd(t *testing.T) {
	tcs := []struct {
		name     string
		supportA model.Support
		thetaB   float64
		mAB, mBA float64
	}{
		// no fixed node: θ stays zero and the chord term alone gives -6EIΔ/L²
		{"pinned far end", model.SupportPinned, 0, -120, -120},
		// propped cantilever settling at the prop: -3EIΔ/L² at the root
		{"fixed far end", model.SupportFixed, 0.003, -60, 0},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			doc := twoSpan()
			doc.Loads = nil
			doc.Nodes[0].Support = tc.supportA
			doc.Nodes[1].Settlement = 0.01
			if tc.supportA == model.SupportFixed {
				doc.Nodes = doc.Nodes[:2]
				doc.Nodes[1].Support = model.SupportRoller
				doc.Spans = doc.Spans[:1]
			}
			res, err := NewSolver(doc).Solve()
			if err != nil {
				t.Fatal(err)
			}
			for _, r := range res.Rotations {
				if r.Node == "B" && !near(r.Rotation, tc.thetaB) {
					t.Errorf("θB = %v, want %v", r.Rotation, tc.thetaB)
				}
				if r.Node == "A" && !near(r.Rotation, 0) {
					t.Errorf("θA = %v, want 0", r.Rotation)
				}
			}
			sp := res.Spans[0]
			if !near(sp.MomentStart, tc.mAB) || !near(sp.MomentEnd, tc.mBA) {
				t.Fatalf("end moments = (%v, %v), want (%v, %v)", sp.MomentStart, sp.MomentEnd, tc.mAB, tc.mBA)
			}
		})
	}
}

func TestInteriorFreeNodeIsRotationUnknown(t *testing.T) {
	doc := &model.BeamDocument{
		DefaultEI: 20000,
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportFixed},
			{ID: "B", X: 5, Support: model.SupportFree},
			{ID: "C", X: 10, Support: model.SupportFixed},
		},
		Spans: []model.Span{
			{ID: "AB", Start: "A", End: "B"},
			{ID: "BC", Start: "B", End: "C"},
		},
		Loads: []model.Load{
			{Type: model.LoadUDL, Span: "AB", W: 10},
			{Type: model.LoadUDL, Span: "BC", W: 10},
		},
	}
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res.Rotations {
		if r.Node == "B" && (!r.Unknown || !near(r.Rotation, 0)) {
			t.Fatalf("rotation at B = %+v, want a zero unknown by symmetry", r)
		}
	}
	if got := res.Spans[0].MomentStart; !near(got, -250.0/12) {
		t.Errorf("M_AB = %v, want -wL²/12", got)
	}
	if got := res.Spans[0].MomentEnd + res.Spans[1].MomentStart; !near(got, 0) {
		t.Errorf("joint B out of balance by %v", got)
	}
	if !near(reaction(t, res, "B").Force, 50) || !near(res.Summary.TotalReaction, 100) {
		t.Fatalf("R_B = %v, total %v", reaction(t, res, "B").Force, res.Summary.TotalReaction)
	}
	for _, sp := range res.Spans {
		if sp.Cantilever {
			t.Fatalf("span %s treated as a cantilever", sp.ID)
		}
	}
}

func TestReversedSpanMatchesForward(t *testing.T) {
	forward := twoSpan()
	forward.Loads = []model.Load{{Type: model.LoadPoint, Span: "BC", P: 12, A: 1}}
	reversed := twoSpan()
	reversed.Spans[1] = model.Span{ID: "BC", Start: "C", End: "B"}
	reversed.Loads = []model.Load{{Type: model.LoadPoint, Span: "BC", P: 12, A: 4}}

	rf, err := NewSolver(forward).Solve()
	if err != nil {
		t.Fatal(err)
	}
	rr, err := NewSolver(reversed).Solve()
	if err != nil {
		t.Fatal(err)
	}
	for k := range rf.Reactions {
		if !near(rf.Reactions[k].Force, rr.Reactions[k].Force) {
			t.Fatalf("reaction %s: %v vs %v", rf.Reactions[k].Node, rf.Reactions[k].Force, rr.Reactions[k].Force)
		}
	}
}

func TestPointLoadMidspanFEM(t *testing.T) {
	doc := &model.BeamDocument{
		DefaultEI: 1000,
		Nodes: []model.BeamNode{
			{ID: "A", X: 0, Support: model.SupportPinned},
			{ID: "B", X: 4, Support: model.SupportRoller},
		},
		Spans: []model.Span{{ID: "S", Start: "A", End: "B"}},
		Loads: []model.Load{{Type: model.LoadPoint, Span: "S", P: 10, A: 2}},
	}
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if sp := res.Spans[0]; !near(sp.FEMStart, -5) || !near(sp.FEMEnd, 5) {
		t.Fatalf("FEM = (%v, %v), want (-PL/8, PL/8)", sp.FEMStart, sp.FEMEnd)
	}
	if a, b := reaction(t, res, "A").Force, reaction(t, res, "B").Force; !near(a, 5) || !near(b, 5) {
		t.Fatalf("reactions = (%v, %v), want P/2", a, b)
	}
	if !near(res.Summary.MaxMoment, 10) || !near(res.Summary.MaxMomentAt, 2) {
		t.Fatalf("max moment %v at %v, want PL/4 = 10 at 2", res.Summary.MaxMoment, res.Summary.MaxMomentAt)
	}
}

func TestSolveErrors(t *testing.T) {
	t.Run("single node", func(t *testing.T) {
		doc := &model.BeamDocument{Nodes: []model.BeamNode{{ID: "A", Support: model.SupportFree}}}
		_, err := NewSolver(doc).Solve()
		if !errors.Is(err, model.ErrUnstableStructure) {
			t.Fatalf("err = %v, want ErrUnstableStructure", err)
		}
	})

	t.Run("too few restraints", func(t *testing.T) {
		doc := &model.BeamDocument{
			DefaultEI: 1,
			Nodes: []model.BeamNode{
				{ID: "A", X: 0, Support: model.SupportPinned},
				{ID: "B", X: 2, Support: model.SupportFree},
			},
			Spans: []model.Span{{ID: "S", Start: "A", End: "B"}},
		}
		_, err := NewSolver(doc).Solve()
		if !errors.Is(err, model.ErrUnstableStructure) {
			t.Fatalf("err = %v, want ErrUnstableStructure", err)
		}
	})

	t.Run("invalid load", func(t *testing.T) {
		doc := twoSpan()
		doc.Loads[0].Start, doc.Loads[0].End = f64(4), f64(2)
		_, err := NewSolver(doc).Solve()
		var ie *model.InputError
		if !errors.As(err, &ie) {
			t.Fatalf("err = %v, want *InputError", err)
		}
		if errors.Is(err, linalg.ErrSingularMatrix) {
			t.Fatal("input errors must not look like a singular system")
		}
	})
}

func TestSolverRecoversAfterCorrection(t *testing.T) {
	doc := twoSpan()
	doc.Spans[0].End = "Z"
	s := NewSolver(doc)
	if _, err := s.Solve(); err == nil {
		t.Fatal("expected an input error")
	}
	doc.Spans[0].End = "B"
	res, err := s.Solve()
	if err != nil {
		t.Fatalf("corrected document: %v", err)
	}
	if !near(res.Summary.TotalReaction, 50) {
		t.Fatalf("total reaction = %v", res.Summary.TotalReaction)
	}
}
