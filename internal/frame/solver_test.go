package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
)

const tol = 1e-3

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func boolPtr(b bool) *bool { return &b }

// portal is a 6 m wide, 4 m high single-bay frame with fixed bases
func portal(sway bool) *model.FrameDocument {
	return &model.FrameDocument{
		DefaultEI: 40000,
		IsSway:    sway,
		Nodes: []model.FrameNode{
			{ID: "1", X: 0, Y: 0, Support: model.SupportFixed},
			{ID: "2", X: 6, Y: 0, Support: model.SupportFixed},
			{ID: "3", X: 0, Y: 4, Support: model.SupportFree},
			{ID: "4", X: 6, Y: 4, Support: model.SupportFree},
		},
		Members: []model.Member{
			{ID: "C1", Start: "1", End: "3", MemberType: model.MemberColumn},
			{ID: "C2", Start: "2", End: "4", MemberType: model.MemberColumn},
			{ID: "B1", Start: "3", End: "4", MemberType: model.MemberBeam},
		},
	}
}

func solve(t *testing.T, doc *model.FrameDocument) *Result {
	t.Helper()
	res, err := NewSolver(doc).Solve()
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func checkEquilibrium(t *testing.T, res *Result) {
	t.Helper()
	s := res.Summary
	if !near(s.LoadFX+s.ReactionFX, 0) || !near(s.LoadFY+s.ReactionFY, 0) {
		t.Fatalf("out of balance: loads (%v, %v), reactions (%v, %v)", s.LoadFX, s.LoadFY, s.ReactionFX, s.ReactionFY)
	}
}

func TestPortalGravity(t *testing.T) {
	doc := portal(true)
	doc.Loads = []model.Load{{Type: model.LoadUDL, Member: "B1", W: 10}}
	res := solve(t, doc)
	checkEquilibrium(t, res)

	if !near(res.Summary.LoadFY, -60) {
		t.Fatalf("ΣFy loads = %v, want -60", res.Summary.LoadFY)
	}
	for _, r := range res.Reactions {
		if !near(r.FY, 30) {
			t.Errorf("reaction %s FY = %v, want 30", r.Node, r.FY)
		}
	}
	r1, r2 := res.Reactions[0], res.Reactions[1]
	if !near(r1.FX, -r2.FX) || !near(r1.M, -r2.M) {
		t.Errorf("symmetric frame gave unsymmetric reactions: %+v %+v", r1, r2)
	}
	b1, _ := res.Member("B1")
	if !near(b1.MomentStart, b1.MomentEnd) || b1.MomentStart >= 0 {
		t.Errorf("beam end moments = (%v, %v), want equal hogging", b1.MomentStart, b1.MomentEnd)
	}
	if len(b1.Diagram) != DiagramSamples {
		t.Fatalf("diagram has %d samples", len(b1.Diagram))
	}
	// midspan sagging = simple-span moment less the hogging end moment
	if mid := b1.Diagram[DiagramSamples/2]; !near(mid.Moment, 45+b1.MomentStart) {
		t.Errorf("midspan moment = %v, want %v", mid.Moment, 45+b1.MomentStart)
	}
	if c1, _ := res.Member("C1"); c1.Axial >= 0 {
		t.Errorf("column under gravity should be in compression, axial = %v", c1.Axial)
	}
}

func TestSwayCoupling(t *testing.T) {
	lateral := []model.Load{{Type: model.LoadJoint, Node: "3", Fx: 20}}

	t.Run("rigid diaphragm", func(t *testing.T) {
		doc := portal(true)
		doc.Loads = lateral
		res := solve(t, doc)
		checkEquilibrium(t, res)
		d3, _ := res.Displacement("3")
		d4, _ := res.Displacement("4")
		if d3.DX <= 0 || d3.DX != d4.DX {
			t.Fatalf("top displacements %v and %v, want equal and positive", d3.DX, d4.DX)
		}
		if !near(res.Summary.MaxDrift, d3.DX/4) || res.Summary.MaxDriftStory != 1 {
			t.Fatalf("drift %v at story %d, want %v at 1", res.Summary.MaxDrift, res.Summary.MaxDriftStory, d3.DX/4)
		}
	})

	t.Run("flexible diaphragm", func(t *testing.T) {
		doc := portal(true)
		doc.RigidDiaphragm = boolPtr(false)
		doc.Loads = lateral
		res := solve(t, doc)
		checkEquilibrium(t, res)
		d3, _ := res.Displacement("3")
		d4, _ := res.Displacement("4")
		if d3.DX <= 0 || d4.DX <= 0 || math.Abs(d3.DX-d4.DX) > 0.01*d3.DX {
			t.Fatalf("top displacements %v and %v, want nearly equal and positive", d3.DX, d4.DX)
		}
	})

	t.Run("braced", func(t *testing.T) {
		doc := portal(false)
		doc.Loads = lateral
		res := solve(t, doc)
		checkEquilibrium(t, res)
		for _, id := range []string{"3", "4"} {
			if d, _ := res.Displacement(id); math.Abs(d.DX) > 1e-9 {
				t.Fatalf("braced node %s moved %v", id, d.DX)
			}
		}
		if !near(res.Summary.ReactionFX, -20) {
			t.Fatalf("bracing and base reactions ΣFx = %v, want -20", res.Summary.ReactionFX)
		}
	})
}

func TestReleasedEndNoDOFs(t *testing.T) {
	doc := &model.FrameDocument{
		DefaultEI: 10000,
		Nodes: []model.FrameNode{
			{ID: "1", X: 0, Y: 0, Support: model.SupportFixed},
			{ID: "2", X: 4, Y: 0, Support: model.SupportFixed},
		},
		Members: []model.Member{{ID: "B", Start: "1", End: "2", ReleaseEnd: true}},
		Loads:   []model.Load{{Type: model.LoadUDL, Member: "B", W: 10}},
	}
	res := solve(t, doc)
	if res.Unknowns != 0 {
		t.Fatalf("unknowns = %d, want 0", res.Unknowns)
	}
	checkEquilibrium(t, res)
	b, _ := res.Member("B")
	if !near(b.MomentStart, -20) || !near(b.MomentEnd, 0) {
		t.Fatalf("end moments = (%v, %v), want (-wL²/8, 0)", b.MomentStart, b.MomentEnd)
	}
	if r := res.Reactions[0]; !near(r.FY, 25) || !near(r.M, 20) {
		t.Fatalf("fixed end reaction = %+v, want FY 25, M 20", r)
	}
	if r := res.Reactions[1]; !near(r.FY, 15) || !near(r.M, 0) {
		t.Fatalf("released end reaction = %+v, want FY 15, M 0", r)
	}
}

func TestJointMomentAtHingedNode(t *testing.T) {
	hinged := func() *model.FrameDocument {
		doc := portal(true)
		doc.Members[0].ReleaseEnd = true
		doc.Members[2].ReleaseStart = true
		return doc
	}

	doc := hinged()
	doc.Loads = []model.Load{{Type: model.LoadJoint, Node: "3", M: 50}}
	_, err := NewSolver(doc).Solve()
	var ie *model.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}

	// forces at the hinge still reach the solver
	doc = hinged()
	doc.Loads = []model.Load{{Type: model.LoadJoint, Node: "3", Fx: 10}}
	res := solve(t, doc)
	checkEquilibrium(t, res)
	if d := res.Displacements[2]; d.DX <= 0 || d.Rotation != 0 {
		t.Fatalf("hinge displacement = %+v, want dx > 0 and rotation held", d)
	}
}

func TestCondense(t *testing.T) {
	e := &element{length: 4, ei: 1000, ea: 1e6, c: 1, loads: []fem.Load{fem.Uniform{W: 10, Start: 0, End: 4}}}
	e.releaseJ = true
	e.t = e.transform()
	if err := e.prepare(); err != nil {
		t.Fatal(err)
	}
	for c := 0; c < 6; c++ {
		if e.k[5][c] != 0 || e.k[c][5] != 0 {
			t.Fatalf("released row/column not zero: k[5][%d]=%v k[%d][5]=%v", c, e.k[5][c], c, e.k[c][5])
		}
	}
	want := linalg.Vector{0, 25, 20, 0, 15, 0}
	for c := range want {
		if !near(e.fixed[c], want[c]) {
			t.Fatalf("fixed[%d] = %v, want %v", c, e.fixed[c], want[c])
		}
	}
	// propped cantilever tip stiffness 3EI/L³
	if !near(e.k[1][1], 3*1000.0/64) {
		t.Fatalf("condensed k11 = %v, want %v", e.k[1][1], 3*1000.0/64)
	}
}

func TestSettlement(t *testing.T) {
	doc := &model.FrameDocument{
		DefaultEI: 50000,
		Nodes: []model.FrameNode{
			{ID: "1", X: 0, Y: 0, Support: model.SupportFixed},
			{ID: "2", X: 5, Y: 0, Support: model.SupportFixed, Settlement: &model.Settlement{Dy: -0.01}},
		},
		Members: []model.Member{{ID: "B", Start: "1", End: "2"}},
	}
	res := solve(t, doc)
	b, _ := res.Member("B")
	if !near(b.MomentStart, -120) || !near(b.MomentEnd, 120) {
		t.Fatalf("end moments = (%v, %v), want (-120, 120)", b.MomentStart, b.MomentEnd)
	}
	if d, _ := res.Displacement("2"); d.DY != -0.01 {
		t.Fatalf("prescribed dy = %v", d.DY)
	}
	checkEquilibrium(t, res)
}

func TestStories(t *testing.T) {
	three := 3
	nodes := []model.FrameNode{
		{ID: "a", Y: 0}, {ID: "b", Y: 3.0000001}, {ID: "c", Y: 3}, {ID: "d", Y: 6.5}, {ID: "e", Y: 1, Story: &three},
	}
	got := stories(nodes)
	want := []int{0, 1, 1, 2, 3}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("stories = %v, want %v", got, want)
		}
	}
}

func TestDOFAssignment(t *testing.T) {
	doc := portal(true)
	doc.Nodes[1].Support = model.SupportRoller
	dm := assignDOFs(doc, make([]bool, len(doc.Nodes)))
	// fixed: none; roller: dx, rz; free 3: shared dx, dy, rz; free 4: dy, rz
	if dm.count != 7 {
		t.Fatalf("count = %d, want 7", dm.count)
	}
	if dm.dofs[2].DX != dm.dofs[3].DX {
		t.Fatalf("story nodes do not share dx: %+v %+v", dm.dofs[2], dm.dofs[3])
	}
	if dm.dofs[1].DY != Restrained || dm.dofs[1].DX == Restrained {
		t.Fatalf("roller dofs = %+v", dm.dofs[1])
	}
}

func TestMechanismIsSingular(t *testing.T) {
	doc := &model.FrameDocument{
		DefaultEI: 1000,
		Nodes: []model.FrameNode{
			{ID: "1", X: 0, Y: 0, Support: model.SupportRoller},
			{ID: "2", X: 5, Y: 0, Support: model.SupportRoller},
		},
		Members: []model.Member{{ID: "B", Start: "1", End: "2"}},
		Loads:   []model.Load{{Type: model.LoadPoint, Member: "B", P: 10, Position: 0.5}},
	}
	_, err := NewSolver(doc).Solve()
	if !errors.Is(err, linalg.ErrSingularMatrix) {
		t.Fatalf("err = %v, want ErrSingularMatrix", err)
	}
}

func TestInputErrors(t *testing.T) {
	doc := portal(true)
	doc.Members = append(doc.Members, model.Member{ID: "X", Start: "3", End: "9"})
	_, err := NewSolver(doc).Solve()
	var ie *model.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}

	doc = portal(true)
	doc.Nodes = append(doc.Nodes, model.FrameNode{ID: "lonely", X: 9, Support: model.SupportFixed})
	if _, err := NewSolver(doc).Solve(); !errors.As(err, &ie) {
		t.Fatalf("unconnected node: err = %v, want *InputError", err)
	}
}
