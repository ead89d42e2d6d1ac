package model

import (
	"fmt"
	"math"

	errtree "github.com/Konstantin8105/errors"
)

// SpanLength returns the length of a span: the explicit length when
// positive, otherwise the distance between its nodes
func SpanLength(s Span, start, end BeamNode) float64 {
	if s.Length > 0 {
		return s.Length
	}
	return math.Abs(end.X - start.X)
}

// MemberLength returns the chord length of a member
func MemberLength(start, end FrameNode) float64 {
	return math.Hypot(end.X-start.X, end.Y-start.Y)
}

// finite reports whether none of the values is NaN or infinite
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// numbers lists every numeric field of a load
func (l Load) numbers() []float64 {
	vals := []float64{l.P, l.M, l.W, l.W1, l.W2, l.A, l.Position, l.Fx, l.Fy}
	if l.Start != nil {
		vals = append(vals, *l.Start)
	}
	if l.End != nil {
		vals = append(vals, *l.End)
	}
	return vals
}

// Validate checks every reference, length, rigidity and load position of
// the document and reports all problems at once as an *InputError
func (d *BeamDocument) Validate() error {
	et := errtree.New("beam document")
	if !finite(d.DefaultEI) {
		et.Add(fmt.Errorf("defaultEI must be a finite number"))
	}

	nodes := make(map[string]BeamNode, len(d.Nodes))
	for i, n := range d.Nodes {
		switch {
		case n.ID == "":
			et.Add(fmt.Errorf("node %d: missing id", i+1))
			continue
		case !n.Support.Valid():
			et.Add(fmt.Errorf("node %q: unknown support %q", n.ID, n.Support))
		}
		if !finite(n.X, n.Settlement) {
			et.Add(fmt.Errorf("node %q: position and settlement must be finite", n.ID))
		}
		if _, dup := nodes[n.ID]; dup {
			et.Add(fmt.Errorf("node %q: duplicate id", n.ID))
		}
		nodes[n.ID] = n
	}

	lengths := make(map[string]float64, len(d.Spans))
	for i, s := range d.Spans {
		if s.ID == "" {
			et.Add(fmt.Errorf("span %d: missing id", i+1))
			continue
		}
		if _, dup := lengths[s.ID]; dup {
			et.Add(fmt.Errorf("span %q: duplicate id", s.ID))
			continue
		}
		start, okS := nodes[s.Start]
		end, okE := nodes[s.End]
		if !okS {
			et.Add(fmt.Errorf("span %q: unknown start node %q", s.ID, s.Start))
		}
		if !okE {
			et.Add(fmt.Errorf("span %q: unknown end node %q", s.ID, s.End))
		}
		if !okS || !okE {
			continue
		}
		if s.Start == s.End {
			et.Add(fmt.Errorf("span %q: start and end are the same node", s.ID))
			continue
		}
		if s.Length < 0 || !finite(s.Length) {
			et.Add(fmt.Errorf("span %q: length must be a non-negative number, got %g", s.ID, s.Length))
			continue
		}
		L := SpanLength(s, start, end)
		if L <= 0 || !finite(L) {
			et.Add(fmt.Errorf("span %q: length must be positive", s.ID))
			continue
		}
		if _, _, err := s.Resolve(d.DefaultEI); err != nil {
			et.Add(fmt.Errorf("span %q: %w", s.ID, err))
		}
		lengths[s.ID] = L
	}

	for i, l := range d.Loads {
		if !finite(l.numbers()...) {
			et.Add(fmt.Errorf("load %d: values must be finite", i+1))
			continue
		}
		if l.Type == LoadJoint {
			et.Add(fmt.Errorf("load %d: joint loads are not supported on beams", i+1))
			continue
		}
		L, ok := lengths[l.Span]
		if !ok {
			et.Add(fmt.Errorf("load %d: unknown span %q", i+1, l.Span))
			continue
		}
		if _, err := l.SpanLoad(L); err != nil {
			et.Add(fmt.Errorf("load %d on span %q: %w", i+1, l.Span, err))
		}
	}

	if et.IsError() {
		return &InputError{Err: et}
	}
	return nil
}

// Validate checks the frame document and reports all problems at once as
// an *InputError
func (d *FrameDocument) Validate() error {
	et := errtree.New("frame document")
	if !finite(d.DefaultEI) {
		et.Add(fmt.Errorf("defaultEI must be a finite number"))
	}

	nodes := make(map[string]FrameNode, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			et.Add(fmt.Errorf("node %d: missing id", i+1))
			continue
		}
		if !n.Support.Valid() {
			et.Add(fmt.Errorf("node %q: unknown support %q", n.ID, n.Support))
		}
		switch n.RollerDirection {
		case "", "x", "y":
		default:
			et.Add(fmt.Errorf("node %q: roller direction must be x or y, got %q", n.ID, n.RollerDirection))
		}
		if !finite(n.X, n.Y) {
			et.Add(fmt.Errorf("node %q: coordinates must be finite", n.ID))
		}
		if st := n.Settlement; st != nil && !finite(st.Dx, st.Dy, st.Rotation) {
			et.Add(fmt.Errorf("node %q: settlement must be finite", n.ID))
		}
		if n.Story != nil && *n.Story < 0 {
			et.Add(fmt.Errorf("node %q: negative story %d", n.ID, *n.Story))
		}
		if _, dup := nodes[n.ID]; dup {
			et.Add(fmt.Errorf("node %q: duplicate id", n.ID))
		}
		nodes[n.ID] = n
	}

	lengths := make(map[string]float64, len(d.Members))
	for i, m := range d.Members {
		if m.ID == "" {
			et.Add(fmt.Errorf("member %d: missing id", i+1))
			continue
		}
		if _, dup := lengths[m.ID]; dup {
			et.Add(fmt.Errorf("member %q: duplicate id", m.ID))
			continue
		}
		switch m.MemberType {
		case "", MemberBeam, MemberColumn:
		default:
			et.Add(fmt.Errorf("member %q: unknown member type %q", m.ID, m.MemberType))
		}
		start, okS := nodes[m.Start]
		end, okE := nodes[m.End]
		if !okS {
			et.Add(fmt.Errorf("member %q: unknown start node %q", m.ID, m.Start))
		}
		if !okE {
			et.Add(fmt.Errorf("member %q: unknown end node %q", m.ID, m.End))
		}
		if !okS || !okE {
			continue
		}
		L := MemberLength(start, end)
		if L <= 0 || !finite(L) {
			et.Add(fmt.Errorf("member %q: length must be positive", m.ID))
			continue
		}
		if _, _, err := m.Resolve(d.DefaultEI); err != nil {
			et.Add(fmt.Errorf("member %q: %w", m.ID, err))
		}
		lengths[m.ID] = L
	}

	for i, l := range d.Loads {
		if !finite(l.numbers()...) {
			et.Add(fmt.Errorf("load %d: values must be finite", i+1))
			continue
		}
		if l.Type == LoadJoint {
			if _, ok := nodes[l.Node]; !ok {
				et.Add(fmt.Errorf("load %d: unknown node %q", i+1, l.Node))
			}
			continue
		}
		L, ok := lengths[l.Member]
		if !ok {
			et.Add(fmt.Errorf("load %d: unknown member %q", i+1, l.Member))
			continue
		}
		if _, err := l.MemberLoad(L); err != nil {
			et.Add(fmt.Errorf("load %d on member %q: %w", i+1, l.Member, err))
		}
	}

	if et.IsError() {
		return &InputError{Err: et}
	}
	return nil
}
