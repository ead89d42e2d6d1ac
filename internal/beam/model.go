package beam

import (
	"sort"

	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/model"
)

// node is the solver's view of a beam node
type node struct {
	id         string
	x          float64
	support    model.Support
	settlement float64
	spans      []int // indices into model.spans
	dof        int   // rotation unknown, -1 when fixed or a cantilever tip
	tip        bool  // free node ending a cantilever span
}

// span is the solver's view of a span, always oriented left to right
type span struct {
	id       string
	i, j     int // node indices, i left of j
	length   float64
	ei       float64
	offset   float64 // station of node i along the beam
	loads    []fem.Load
	femStart float64
	femEnd   float64
	reversed bool // declared start node lies right of the end node
	// cantilever tip node, -1 for an ordinary span
	tip int
}

// arena holds the indexed nodes and spans of one solve call
type arena struct {
	nodes []node
	spans []span
	index map[string]int
}

// build validates the document and lays it out along the beam axis
func build(doc *model.BeamDocument) (*arena, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	a := &arena{index: make(map[string]int, len(doc.Nodes))}
	sorted := append([]model.BeamNode(nil), doc.Nodes...)
	sort.SliceStable(sorted, func(p, q int) bool { return sorted[p].X < sorted[q].X })
	for _, n := range sorted {
		a.index[n.ID] = len(a.nodes)
		a.nodes = append(a.nodes, node{
			id:         n.ID,
			x:          n.X,
			support:    n.Support,
			settlement: n.Settlement,
			dof:        -1,
		})
	}

	spanIndex := make(map[string]int, len(doc.Spans))
	for _, s := range doc.Spans {
		i, j := a.index[s.Start], a.index[s.End]
		L := model.SpanLength(s, sorted[i], sorted[j])
		ei, _, _ := s.Resolve(doc.DefaultEI)
		reversed := a.nodes[i].x > a.nodes[j].x
		if reversed {
			i, j = j, i
		}
		spanIndex[s.ID] = len(a.spans)
		a.spans = append(a.spans, span{id: s.ID, i: i, j: j, length: L, ei: ei, reversed: reversed, tip: -1})
	}

	for _, l := range doc.Loads {
		k := spanIndex[l.Span]
		sp := &a.spans[k]
		fl, err := l.SpanLoad(sp.length)
		if err != nil {
			return nil, model.Inputf("span %q: %v", sp.id, err)
		}
		// loads are positioned from the declared start node
		if sp.reversed {
			fl = mirror(fl, sp.length)
		}
		sp.loads = append(sp.loads, fl)
	}

	// stations: spans in order of their left node, laid end to end
	order := make([]int, len(a.spans))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(p, q int) bool {
		return a.nodes[a.spans[order[p]].i].x < a.nodes[a.spans[order[q]].i].x
	})
	station := 0.0
	if len(a.nodes) > 0 {
		station = a.nodes[0].x
	}
	ordered := make([]span, 0, len(a.spans))
	for _, k := range order {
		sp := a.spans[k]
		sp.offset = station
		station += sp.length
		ordered = append(ordered, sp)
	}
	a.spans = ordered

	for k, sp := range a.spans {
		a.nodes[sp.i].spans = append(a.nodes[sp.i].spans, k)
		a.nodes[sp.j].spans = append(a.nodes[sp.j].spans, k)
	}
	return a, nil
}

// mirror re-expresses a load measured from the right end of a span
func mirror(l fem.Load, L float64) fem.Load {
	switch v := l.(type) {
	case fem.Point:
		return fem.Point{P: v.P, A: L - v.A}
	case fem.Uniform:
		return fem.Uniform{W: v.W, Start: L - v.End, End: L - v.Start}
	case fem.Varying:
		return fem.Varying{W1: v.W2, W2: v.W1, Start: L - v.End, End: L - v.Start}
	case fem.Moment:
		return fem.Moment{M: v.M, A: L - v.A}
	}
	return l
}

// restraints counts the support restraints of the beam
func (a *arena) restraints() int {
	n := 0
	for _, nd := range a.nodes {
		n += nd.support.Restraints()
	}
	return n
}

// length is the total station length of the beam
func (a *arena) length() float64 {
	total := 0.0
	for _, sp := range a.spans {
		total += sp.length
	}
	return total
}
