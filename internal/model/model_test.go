package model

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/section"
)

func f64(v float64) *float64 { return &v }

const twoSpanJSON = `{
  "name": "two span",
  "defaultEI": 50000,
  "nodes": [
    {"id": "A", "x": 0, "support": "pinned"},
    {"id": "B", "x": 5, "support": "pinned"},
    {"id": "C", "x": 10, "support": "roller", "settlement": 0.01}
  ],
  "spans": [
    {"id": "AB", "start": "A", "end": "B", "eiMode": "direct", "ei": 50000},
    {"id": "BC", "start": "B", "end": "C", "eiMultiplier": 2}
  ],
  "loads": [
    {"type": "udl", "span": "AB", "w": 10, "case": "D"},
    {"type": "point", "span": "BC", "p": 20, "a": 2.5, "case": "L"}
  ]
}`

func TestReadBeamDocument(t *testing.T) {
	doc, err := ReadBeamDocument(strings.NewReader(twoSpanJSON))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 3 || len(doc.Spans) != 2 || len(doc.Loads) != 2 {
		t.Fatalf("decoded %d nodes, %d spans, %d loads", len(doc.Nodes), len(doc.Spans), len(doc.Loads))
	}
	if doc.Nodes[2].Settlement != 0.01 {
		t.Fatalf("settlement = %v", doc.Nodes[2].Settlement)
	}
	ei, _, err := doc.Spans[1].Resolve(doc.DefaultEI)
	if err != nil || ei != 100000 {
		t.Fatalf("multiplier EI = %v, %v", ei, err)
	}
}

func TestReadBeamDocumentRejectsUnknownFields(t *testing.T) {
	_, err := ReadBeamDocument(strings.NewReader(`{"nodes": [], "bogus": 1}`))
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
}

func TestBeamValidate(t *testing.T) {
	base := func() *BeamDocument {
		return &BeamDocument{
			Nodes: []BeamNode{
				{ID: "A", X: 0, Support: SupportPinned},
				{ID: "B", X: 4, Support: SupportRoller},
			},
			Spans: []Span{{ID: "S1", Start: "A", End: "B", Rigidity: Rigidity{EI: 1000}}},
		}
	}

	tcs := []struct {
		name   string
		mutate func(d *BeamDocument)
		want   string
	}{
		{"unknown support", func(d *BeamDocument) { d.Nodes[0].Support = "clamped" }, "unknown support"},
		{"duplicate node", func(d *BeamDocument) { d.Nodes[1].ID = "A" }, "duplicate id"},
		{"missing node", func(d *BeamDocument) { d.Spans[0].End = "Z" }, "unknown end node"},
		{"zero length", func(d *BeamDocument) { d.Nodes[1].X = 0 }, "length must be positive"},
		{"negative EI", func(d *BeamDocument) { d.Spans[0].EI = -5; d.Spans[0].Mode = EIDirect }, "EI must be positive"},
		{"no default EI", func(d *BeamDocument) { d.Spans[0].EI = 0 }, "defaultEI"},
		{"unknown span", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadPoint, Span: "S9", P: 1, A: 1}}
		}, "unknown span"},
		{"point outside", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadPoint, Span: "S1", P: 1, A: 4.5}}
		}, "outside"},
		{"udl reversed", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadUDL, Span: "S1", W: 1, Start: f64(3), End: f64(1)}}
		}, "less than end"},
		{"joint on beam", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadJoint, Node: "A", Fy: 1}}
		}, "joint loads"},
		{"unknown load type", func(d *BeamDocument) {
			d.Loads = []Load{{Type: "snow", Span: "S1"}}
		}, "unknown load type"},
		{"NaN EI", func(d *BeamDocument) {
			d.Spans[0].Mode, d.Spans[0].EI = EIDirect, math.NaN()
		}, "finite"},
		{"infinite EI", func(d *BeamDocument) { d.Spans[0].EI = math.Inf(1) }, "finite"},
		{"infinite position", func(d *BeamDocument) { d.Nodes[1].X = math.Inf(1) }, "finite"},
		{"NaN settlement", func(d *BeamDocument) { d.Nodes[0].Settlement = math.NaN() }, "finite"},
		{"NaN length", func(d *BeamDocument) { d.Spans[0].Length = math.NaN() }, "length must be"},
		{"NaN load", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadPoint, Span: "S1", P: math.NaN(), A: 1}}
		}, "finite"},
		{"infinite load end", func(d *BeamDocument) {
			d.Loads = []Load{{Type: LoadUDL, Span: "S1", W: 1, End: f64(math.Inf(1))}}
		}, "finite"},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base document: %v", err)
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := base()
			tc.mutate(d)
			err := d.Validate()
			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestBeamValidateCollectsAllProblems(t *testing.T) {
	d := &BeamDocument{
		Nodes: []BeamNode{{ID: "A", Support: "bad"}, {ID: "B", X: 1, Support: "worse"}},
		Spans: []Span{{ID: "S", Start: "A", End: "B", Rigidity: Rigidity{EI: 1}}},
	}
	msg := d.Validate().Error()
	if !strings.Contains(msg, `"bad"`) || !strings.Contains(msg, `"worse"`) {
		t.Fatalf("both problems should be reported:\n%s", msg)
	}
}

func TestFrameValidate(t *testing.T) {
	d := &FrameDocument{
		DefaultEI: 1000,
		Nodes: []FrameNode{
			{ID: "1", X: 0, Y: 0, Support: SupportFixed},
			{ID: "2", X: 0, Y: 3, Support: SupportFree, RollerDirection: "z"},
		},
		Members: []Member{
			{ID: "C1", Start: "1", End: "2", MemberType: "column"},
			{ID: "C2", Start: "1", End: "1"},
		},
		Loads: []Load{
			{Type: LoadJoint, Node: "9", Fx: 1},
			{Type: LoadPoint, Member: "C1", P: 1, Position: 1.5},
		},
	}
	err := d.Validate()
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
	for _, want := range []string{"roller direction", `member "C2": length`, `unknown node "9"`, "outside"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("err missing %q:\n%s", want, err)
		}
	}
}

func TestFrameValidateRejectsNonFinite(t *testing.T) {
	base := func() *FrameDocument {
		return &FrameDocument{
			DefaultEI: 1000,
			Nodes: []FrameNode{
				{ID: "1", X: 0, Y: 0, Support: SupportFixed},
				{ID: "2", X: 0, Y: 3, Support: SupportFree},
			},
			Members: []Member{{ID: "C", Start: "1", End: "2"}},
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base document: %v", err)
	}

	mutations := map[string]func(d *FrameDocument){
		"default EI": func(d *FrameDocument) { d.DefaultEI = math.NaN() },
		"coordinate": func(d *FrameDocument) { d.Nodes[1].Y = math.Inf(-1) },
		"settlement": func(d *FrameDocument) { d.Nodes[0].Settlement = &Settlement{Dy: math.NaN()} },
		"joint load": func(d *FrameDocument) { d.Loads = []Load{{Type: LoadJoint, Node: "2", Fx: math.Inf(1)}} },
		"member EI":  func(d *FrameDocument) { d.Members[0].EI = math.Inf(1) },
		"load position": func(d *FrameDocument) {
			d.Loads = []Load{{Type: LoadPoint, Member: "C", P: 1, Position: math.NaN()}}
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			d := base()
			mutate(d)
			var ie *InputError
			if err := d.Validate(); !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
		})
	}
}

func TestRigidityResolve(t *testing.T) {
	tcs := []struct {
		name   string
		r      Rigidity
		ei, ea float64
	}{
		{"direct", Rigidity{EI: 50000}, 50000, 0},
		{"implicit multiplier", Rigidity{}, 20000, 0},
		{"multiplier", Rigidity{Mode: EIMultiplier, Multiplier: 1.5}, 30000, 0},
		{"separate", Rigidity{E: 200, I: 1e8, A: 5000}, 20000, 1e6},
		{"section", Rigidity{E: 25, Section: section.Rectangle("r", 300, 600)}, 25 * 300 * 600 * 600 * 600 / 12 * 1e-6, 25 * 300 * 600},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ei, ea, err := tc.r.Resolve(20000)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(ei-tc.ei) > 1e-6*tc.ei || math.Abs(ea-tc.ea) > 1e-6 {
				t.Fatalf("Resolve = (%v, %v), want (%v, %v)", ei, ea, tc.ei, tc.ea)
			}
		})
	}

	if _, _, err := (Rigidity{Mode: "guess"}).Resolve(1); err == nil {
		t.Fatal("unknown mode should fail")
	}
	if _, _, err := (Rigidity{Mode: EISeparate, E: 200}).Resolve(1); err == nil {
		t.Fatal("separate without I should fail")
	}
}

func TestLoadConversion(t *testing.T) {
	l := Load{Type: LoadVDL, W1: 2, W2: 8, Start: f64(0.25), End: f64(0.75)}
	got, err := l.MemberLoad(4)
	if err != nil {
		t.Fatal(err)
	}
	want := fem.Varying{W1: 2, W2: 8, Start: 1, End: 3}
	if got != want {
		t.Fatalf("MemberLoad = %+v, want %+v", got, want)
	}

	full, err := Load{Type: LoadUDL, W: 5}.SpanLoad(6)
	if err != nil {
		t.Fatal(err)
	}
	if full != (fem.Uniform{W: 5, Start: 0, End: 6}) {
		t.Fatalf("full span udl = %+v", full)
	}

	scaled := Load{Type: LoadPoint, P: 10, Start: f64(1)}.Scaled(1.6)
	if scaled.P != 16 {
		t.Fatalf("Scaled P = %v", scaled.P)
	}
}

func TestFrameDocumentClone(t *testing.T) {
	story := 1
	d := &FrameDocument{
		Nodes: []FrameNode{{ID: "1", Story: &story, Settlement: &Settlement{Dy: 0.01}}},
		Loads: []Load{{Type: LoadUDL, Start: f64(0)}},
	}
	c := d.Clone()
	*c.Nodes[0].Story = 5
	c.Nodes[0].Settlement.Dy = 1
	*c.Loads[0].Start = 0.5
	if story != 1 || d.Nodes[0].Settlement.Dy != 0.01 || *d.Loads[0].Start != 0 {
		t.Fatal("clone shares state with original")
	}
	if !d.Diaphragm() {
		t.Fatal("rigid diaphragm should default to true")
	}
}
