package frame

import (
	"sort"

	"github.com/alexiusacademia/goframe/internal/model"
)

// Restrained marks a component without an unknown
const Restrained = -1

// storyTol groups node elevations into stories
const storyTol = 1e-6

// DOF holds the equation numbers of a node's dx, dy and rotation, or
// Restrained
type DOF struct {
	DX, DY, RZ int
}

// Indices returns the equation numbers in component order
func (d DOF) Indices() [3]int {
	return [3]int{d.DX, d.DY, d.RZ}
}

// Fixity is the set of components held by a support or bracing
type Fixity [3]bool

// dofMap is the result of DOF assignment
type dofMap struct {
	dofs    []DOF
	fixity  []Fixity
	stories []int
	count   int
	shared  map[int]int // story -> shared horizontal equation
}

// stories returns the story index of every node: explicit when given,
// otherwise the rank of its elevation among the distinct elevations of the
// nodes without an explicit story
func stories(nodes []model.FrameNode) []int {
	levels := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		if n.Story == nil {
			levels = append(levels, n.Y)
		}
	}
	sort.Float64s(levels)
	distinct := levels[:0]
	for _, y := range levels {
		if len(distinct) == 0 || y-distinct[len(distinct)-1] > storyTol {
			distinct = append(distinct, y)
		}
	}

	out := make([]int, len(nodes))
	for k, n := range nodes {
		if n.Story != nil {
			out[k] = *n.Story
			continue
		}
		out[k] = sort.Search(len(distinct), func(i int) bool {
			return distinct[i] >= n.Y-storyTol
		})
	}
	return out
}

// assignDOFs numbers the unknowns of every node in document order.
//
// fixed: none; pinned: rotation; roller: translation along its direction
// and rotation; free: dx, dy, rotation. In a sway frame with a rigid
// diaphragm the free nodes of a story share one dx; in a braced frame the
// dx of free nodes is held by the bracing. Rotations of nodes where every
// connected member end is released carry no stiffness and are held.
func assignDOFs(doc *model.FrameDocument, hinged []bool) dofMap {
	m := dofMap{
		dofs:    make([]DOF, len(doc.Nodes)),
		fixity:  make([]Fixity, len(doc.Nodes)),
		stories: stories(doc.Nodes),
		shared:  make(map[int]int),
	}
	next := func() int {
		m.count++
		return m.count - 1
	}
	diaphragm := doc.IsSway && doc.Diaphragm()

	for k, n := range doc.Nodes {
		d := DOF{DX: Restrained, DY: Restrained, RZ: Restrained}
		var fix Fixity
		switch n.Support {
		case model.SupportFixed:
			fix = Fixity{true, true, true}
		case model.SupportPinned:
			fix = Fixity{true, true, false}
		case model.SupportRoller:
			if n.RollerDirection == "y" {
				fix = Fixity{true, false, false}
			} else {
				fix = Fixity{false, true, false}
			}
		case model.SupportFree:
			fix = Fixity{!doc.IsSway, false, false}
		}

		if !fix[0] {
			if n.Support == model.SupportFree && diaphragm {
				eq, ok := m.shared[m.stories[k]]
				if !ok {
					eq = next()
					m.shared[m.stories[k]] = eq
				}
				d.DX = eq
			} else {
				d.DX = next()
			}
		}
		if !fix[1] {
			d.DY = next()
		}
		if !fix[2] && !hinged[k] {
			d.RZ = next()
		}
		m.dofs[k] = d
		m.fixity[k] = fix
	}
	return m
}

// hingedNodes reports, per node, whether every member end meeting it is
// released, and whether it is connected at all
func hingedNodes(nodes map[string]int, members []model.Member, count int) (hinged, connected []bool) {
	rigid := make([]bool, count)
	connected = make([]bool, count)
	for _, mem := range members {
		i, j := nodes[mem.Start], nodes[mem.End]
		connected[i], connected[j] = true, true
		if !mem.ReleaseStart {
			rigid[i] = true
		}
		if !mem.ReleaseEnd {
			rigid[j] = true
		}
	}
	hinged = make([]bool, count)
	for k := range hinged {
		hinged[k] = connected[k] && !rigid[k]
	}
	return hinged, connected
}

// prescribed returns the imposed displacement of every restrained component
func prescribed(n model.FrameNode, d DOF) [3]float64 {
	var p [3]float64
	if n.Settlement == nil {
		return p
	}
	s := [3]float64{n.Settlement.Dx, n.Settlement.Dy, n.Settlement.Rotation}
	for c, eq := range d.Indices() {
		if eq == Restrained {
			p[c] = s[c]
		}
	}
	return p
}

// storyElevations returns the mean elevation of each story
func storyElevations(nodes []model.FrameNode, st []int) map[int]float64 {
	sum := make(map[int]float64)
	cnt := make(map[int]int)
	for k, n := range nodes {
		sum[st[k]] += n.Y
		cnt[st[k]]++
	}
	out := make(map[int]float64, len(sum))
	for s, v := range sum {
		out[s] = v / float64(cnt[s])
	}
	return out
}
