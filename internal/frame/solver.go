// Package frame analyses planar rigid frames with the direct stiffness
// method.
//
// Every node carries up to three unknowns (dx, dy, rotation) depending on
// its support. Sway frames may tie the horizontal displacement of all free
// nodes of a story together (rigid diaphragm). Members may be released at
// either end; released ends are condensed out of the member stiffness.
package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/goframe/internal/calclog"
	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
)

// DiagramSamples is the number of diagram points per member
const DiagramSamples = 21

// Solver analyses one frame document. It keeps no state between calls to
// Solve.
type Solver struct {
	doc *model.FrameDocument
}

// NewSolver creates a solver for the document
func NewSolver(doc *model.FrameDocument) *Solver {
	return &Solver{doc: doc}
}

// analysis holds the working state of one Solve call
type analysis struct {
	doc      *model.FrameDocument
	index    map[string]int
	dm       dofMap
	elements []*element
	joint    [][3]float64 // applied joint loads per node
	log      *calclog.Log
}

// Solve runs the analysis
func (s *Solver) Solve() (*Result, error) {
	doc := s.doc
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(doc.Members) == 0 {
		return nil, model.Inputf("frame has no members")
	}

	an := &analysis{
		doc:   doc,
		index: make(map[string]int, len(doc.Nodes)),
		joint: make([][3]float64, len(doc.Nodes)),
		log:   &calclog.Log{},
	}
	for k, n := range doc.Nodes {
		an.index[n.ID] = k
	}
	hinged, connected := hingedNodes(an.index, doc.Members, len(doc.Nodes))
	for k, ok := range connected {
		if !ok {
			return nil, model.Inputf("node %q is not connected to any member", doc.Nodes[k].ID)
		}
	}

	an.dm = assignDOFs(doc, hinged)
	an.logDOFs()

	if err := an.buildElements(); err != nil {
		return nil, err
	}

	K, F, err := an.assemble()
	if err != nil {
		return nil, err
	}
	d := make(linalg.Vector, an.dm.count)
	if an.dm.count > 0 {
		an.log.Add("Stiffness system",
			fmt.Sprintf("%d x %d system K·d = F", an.dm.count, an.dm.count),
			diagonal(K, F)...)
		d, err = linalg.SolveLinearSystem(K, F)
		if err != nil {
			return nil, err
		}
	} else {
		an.log.Add("Stiffness system", "no unknowns, all nodes restrained")
	}

	res := &Result{Name: doc.Name, Unknowns: an.dm.count, Log: an.log}
	disp := an.displacements(d)
	for k, n := range doc.Nodes {
		res.Displacements = append(res.Displacements, NodeDisplacement{
			Node:     n.ID,
			X:        n.X,
			Y:        n.Y,
			DX:       disp[k][0],
			DY:       disp[k][1],
			Rotation: disp[k][2],
			Story:    an.dm.stories[k],
		})
	}
	an.logDisplacements(res.Displacements)

	nodeForces := make([][3]float64, len(doc.Nodes))
	for _, e := range an.elements {
		mr, global, err := an.memberResult(e, disp)
		if err != nil {
			return nil, err
		}
		for c := 0; c < 3; c++ {
			nodeForces[e.i][c] += global[c]
			nodeForces[e.j][c] += global[3+c]
		}
		res.Members = append(res.Members, mr)
	}

	res.Reactions = an.reactions(nodeForces)
	res.Stories = an.drift(res.Displacements)
	res.Summary = an.summarize(res)
	an.log.Add("Equilibrium",
		"applied loads against support reactions",
		calclog.V("ΣFx loads", res.Summary.LoadFX, "kN"),
		calclog.V("ΣFx reactions", res.Summary.ReactionFX, "kN"),
		calclog.V("ΣFy loads", res.Summary.LoadFY, "kN"),
		calclog.V("ΣFy reactions", res.Summary.ReactionFY, "kN"))
	return res, nil
}

// buildElements creates the members, attaches their loads and collects
// the joint loads
func (an *analysis) buildElements() error {
	doc := an.doc
	byID := make(map[string]*element, len(doc.Members))
	for _, m := range doc.Members {
		i, j := an.index[m.Start], an.index[m.End]
		e, err := newElement(m, i, j, doc.Nodes[i], doc.Nodes[j], doc.DefaultEI)
		if err != nil {
			return err
		}
		di, dj := an.dm.dofs[i].Indices(), an.dm.dofs[j].Indices()
		copy(e.global[:3], di[:])
		copy(e.global[3:], dj[:])
		an.elements = append(an.elements, e)
		byID[m.ID] = e
	}

	for _, l := range doc.Loads {
		if l.Type == model.LoadJoint {
			k := an.index[l.Node]
			if l.M != 0 && an.dm.dofs[k].RZ == Restrained && !an.dm.fixity[k][2] {
				return model.Inputf("joint moment at node %q: every member end there is released", l.Node)
			}
			an.joint[k][0] += l.Fx
			an.joint[k][1] += l.Fy
			an.joint[k][2] += l.M
			continue
		}
		e := byID[l.Member]
		fl, err := l.MemberLoad(e.length)
		if err != nil {
			return model.Inputf("member %q: %v", e.id, err)
		}
		e.loads = append(e.loads, fl)
	}

	for _, e := range an.elements {
		if err := e.prepare(); err != nil {
			return fmt.Errorf("member %q: %w", e.id, err)
		}
		release := "none"
		switch {
		case e.releaseI && e.releaseJ:
			release = "both ends (truss)"
		case e.releaseI:
			release = "start"
		case e.releaseJ:
			release = "end"
		}
		an.log.Add("Member "+e.id,
			fmt.Sprintf("%s -> %s, angle %.2f°, %d load(s), release: %s",
				doc.Nodes[e.i].ID, doc.Nodes[e.j].ID, e.angle(), len(e.loads), release),
			calclog.V("L", e.length, "m"),
			calclog.V("EI", e.ei, "kN·m²"),
			calclog.V("EA", e.ea, "kN"),
			calclog.V("f_fixed Vi", e.fixed[1], "kN"),
			calclog.V("f_fixed Mi", e.fixed[2], "kN·m"),
			calclog.V("f_fixed Vj", e.fixed[4], "kN"),
			calclog.V("f_fixed Mj", e.fixed[5], "kN·m"))
	}
	return nil
}

// assemble scatters the member stiffness and the equivalent nodal loads
// into the global system
func (an *analysis) assemble() (linalg.Matrix, linalg.Vector, error) {
	n := an.dm.count
	K := linalg.Zeros(n, n)
	F := make(linalg.Vector, n)

	for k, dof := range an.dm.dofs {
		for c, eq := range dof.Indices() {
			if eq != Restrained {
				F[eq] += an.joint[k][c]
			}
		}
	}

	for _, e := range an.elements {
		for a, ra := range e.global {
			if ra == Restrained {
				continue
			}
			for b, rb := range e.global {
				if rb != Restrained {
					K[ra][rb] += e.kg[a][b]
				}
			}
		}

		equiv, err := e.toGlobal(e.fixed)
		if err != nil {
			return nil, nil, err
		}
		imposed := an.imposed(e)
		kd, err := e.kg.MulVec(imposed)
		if err != nil {
			return nil, nil, err
		}
		for a, ra := range e.global {
			if ra != Restrained {
				F[ra] -= equiv[a] + kd[a]
			}
		}
	}
	return K, F, nil
}

// imposed returns the prescribed global end displacements of a member
func (an *analysis) imposed(e *element) linalg.Vector {
	pi := prescribed(an.doc.Nodes[e.i], an.dm.dofs[e.i])
	pj := prescribed(an.doc.Nodes[e.j], an.dm.dofs[e.j])
	return linalg.Vector{pi[0], pi[1], pi[2], pj[0], pj[1], pj[2]}
}

// displacements expands the solution into per-node components, filling
// restrained components with their prescribed values
func (an *analysis) displacements(d linalg.Vector) [][3]float64 {
	out := make([][3]float64, len(an.doc.Nodes))
	for k, n := range an.doc.Nodes {
		dof := an.dm.dofs[k]
		p := prescribed(n, dof)
		for c, eq := range dof.Indices() {
			if eq == Restrained {
				out[k][c] = p[c]
			} else {
				out[k][c] = d[eq]
			}
		}
	}
	return out
}

// memberResult recovers the local end forces and diagrams of a member. It
// also returns the end forces in global components.
func (an *analysis) memberResult(e *element, disp [][3]float64) (MemberResult, linalg.Vector, error) {
	dg := linalg.Vector{
		disp[e.i][0], disp[e.i][1], disp[e.i][2],
		disp[e.j][0], disp[e.j][1], disp[e.j][2],
	}
	f, err := e.endForces(dg)
	if err != nil {
		return MemberResult{}, nil, err
	}
	global, err := e.toGlobal(f)
	if err != nil {
		return MemberResult{}, nil, err
	}

	mr := MemberResult{
		ID:          e.id,
		Start:       an.doc.Nodes[e.i].ID,
		End:         an.doc.Nodes[e.j].ID,
		MemberType:  string(e.memberType),
		Length:      e.length,
		Angle:       e.angle(),
		EI:          e.ei,
		EA:          e.ea,
		Axial:       -f[0],
		MomentStart: -f[2],
		MomentEnd:   f[5],
		Diagram:     e.diagram(f),
	}
	copy(mr.EndForces[:], f)

	an.log.Add("End forces "+e.id,
		"f = k·T·d + f_fixed (local axes)",
		calclog.V("Ni", f[0], "kN"),
		calclog.V("Vi", f[1], "kN"),
		calclog.V("Mi", f[2], "kN·m"),
		calclog.V("Nj", f[3], "kN"),
		calclog.V("Vj", f[4], "kN"),
		calclog.V("Mj", f[5], "kN·m"))
	return mr, global, nil
}

// diagram walks the member from its start node subtracting the loads met
func (e *element) diagram(f linalg.Vector) []MemberSample {
	out := make([]MemberSample, DiagramSamples)
	for n := range out {
		x := e.length * float64(n) / float64(DiagramSamples-1)
		v := f[1]
		m := -f[2] + f[1]*x
		for _, l := range e.loads {
			v -= fem.ShearAt(l, x)
			m -= fem.MomentAt(l, x)
		}
		out[n] = MemberSample{X: x, Axial: -f[0], Shear: v, Moment: m}
	}
	return out
}

// reactions resolves the support forces from the member end forces less
// the loads applied directly at the node
func (an *analysis) reactions(nodeForces [][3]float64) []Reaction {
	var out []Reaction
	var values []calclog.Value
	names := [3]string{"Rx", "Ry", "M"}
	for k, n := range an.doc.Nodes {
		fix := an.dm.fixity[k]
		if !fix[0] && !fix[1] && !fix[2] {
			continue
		}
		r := Reaction{Node: n.ID, Support: string(n.Support), Restrains: fix}
		comps := [3]*float64{&r.FX, &r.FY, &r.M}
		for c := 0; c < 3; c++ {
			if fix[c] {
				*comps[c] = nodeForces[k][c] - an.joint[k][c]
				values = append(values, calclog.V(names[c]+" "+n.ID, *comps[c], unit(c)))
			}
		}
		out = append(out, r)
	}
	an.log.Add("Support reactions", "Σ member end forces − joint loads at restrained components", values...)
	return out
}

// drift computes the mean lateral displacement of each story and the
// drift ratio to the story below
func (an *analysis) drift(disp []NodeDisplacement) []StoryDrift {
	elev := storyElevations(an.doc.Nodes, an.dm.stories)
	sum := make(map[int]float64)
	cnt := make(map[int]int)
	for _, d := range disp {
		sum[d.Story] += d.DX
		cnt[d.Story]++
	}
	keys := make([]int, 0, len(sum))
	for s := range sum {
		keys = append(keys, s)
	}
	sort.Ints(keys)

	out := make([]StoryDrift, 0, len(keys))
	var values []calclog.Value
	for k, s := range keys {
		sd := StoryDrift{Story: s, Elevation: elev[s], Displacement: sum[s] / float64(cnt[s])}
		if k > 0 {
			below := out[k-1]
			if h := sd.Elevation - below.Elevation; h > storyTol {
				sd.Drift = math.Abs(sd.Displacement-below.Displacement) / h
			}
		}
		out = append(out, sd)
		values = append(values, calclog.V(fmt.Sprintf("drift story %d", s), sd.Drift, ""))
	}
	if an.doc.IsSway {
		an.log.Add("Story drift", "mean dx difference between consecutive stories ÷ story height", values...)
	}
	return out
}

// summarize finds the governing member forces, the largest drift and the
// equilibrium totals
func (an *analysis) summarize(res *Result) Summary {
	var s Summary
	for _, m := range res.Members {
		for _, p := range m.Diagram {
			if math.Abs(p.Moment) > math.Abs(s.MaxMoment) {
				s.MaxMoment, s.MaxMomentMember = p.Moment, m.ID
			}
			if math.Abs(p.Shear) > math.Abs(s.MaxShear) {
				s.MaxShear, s.MaxShearMember = p.Shear, m.ID
			}
			if math.Abs(p.Axial) > math.Abs(s.MaxAxial) {
				s.MaxAxial, s.MaxAxialMember = p.Axial, m.ID
			}
		}
	}
	for _, sd := range res.Stories {
		if sd.Drift > s.MaxDrift {
			s.MaxDrift, s.MaxDriftStory = sd.Drift, sd.Story
		}
	}

	for _, j := range an.joint {
		s.LoadFX += j[0]
		s.LoadFY += j[1]
	}
	for _, e := range an.elements {
		fx, fy := e.loadResultant()
		s.LoadFX += fx
		s.LoadFY += fy
	}
	for _, r := range res.Reactions {
		if r.Restrains[0] {
			s.ReactionFX += r.FX
		}
		if r.Restrains[1] {
			s.ReactionFY += r.FY
		}
	}
	return s
}

func (an *analysis) logDOFs() {
	var sb strings.Builder
	for k, n := range an.doc.Nodes {
		d := an.dm.dofs[k]
		fmt.Fprintf(&sb, "%s (%s, story %d): dx=%s dy=%s rz=%s\n",
			n.ID, n.Support, an.dm.stories[k], eqName(d.DX), eqName(d.DY), eqName(d.RZ))
	}
	mode := "braced"
	if an.doc.IsSway {
		mode = "sway, independent dx"
		if an.doc.Diaphragm() {
			mode = "sway, rigid diaphragm"
		}
	}
	an.log.Add("Degrees of freedom",
		strings.TrimSuffix(sb.String(), "\n"),
		calclog.V("unknowns", float64(an.dm.count), ""),
		calclog.V("shared story dx", float64(len(an.dm.shared)), ""))
	an.log.Addf("Frame type", "%s", mode)
}

func (an *analysis) logDisplacements(disp []NodeDisplacement) {
	values := make([]calclog.Value, 0, 3*len(disp))
	for _, d := range disp {
		values = append(values,
			calclog.V("dx "+d.Node, d.DX, "m"),
			calclog.V("dy "+d.Node, d.DY, "m"),
			calclog.V("rz "+d.Node, d.Rotation, "rad"))
	}
	an.log.Add("Node displacements", "solution of K·d = F with prescribed settlements", values...)
}

func eqName(eq int) string {
	if eq == Restrained {
		return "-"
	}
	return fmt.Sprintf("%d", eq+1)
}

func unit(c int) string {
	if c == 2 {
		return "kN·m"
	}
	return "kN"
}

// diagonal lists the diagonal of K and the load vector for the log
func diagonal(K linalg.Matrix, F linalg.Vector) []calclog.Value {
	values := make([]calclog.Value, 0, 2*len(F))
	for r := range K {
		values = append(values, calclog.V(fmt.Sprintf("K[%d][%d]", r+1, r+1), K[r][r], ""))
	}
	for r := range F {
		values = append(values, calclog.V(fmt.Sprintf("F[%d]", r+1), F[r], ""))
	}
	return values
}
