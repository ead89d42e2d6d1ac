// Package beam analyses continuous beams with the slope-deflection method.
//
// Joint rotations at every node that is not fixed are the unknowns. A free
// node that ends a single span is a cantilever tip: that span is resolved
// by statics and the tip carries no unknown.
package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goframe/internal/calclog"
	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
)

// DiagramSamples is the number of evenly spaced diagram points over the
// whole beam
const DiagramSamples = 101

// Solver analyses one beam document. A Solver keeps no state between calls
// to Solve and may be reused after a failed call.
type Solver struct {
	doc *model.BeamDocument
}

// NewSolver creates a solver for the document
func NewSolver(doc *model.BeamDocument) *Solver {
	return &Solver{doc: doc}
}

// Solve runs the analysis
func (s *Solver) Solve() (*Result, error) {
	log := &calclog.Log{}

	a, err := build(s.doc)
	if err != nil {
		return nil, err
	}
	if err := a.checkStability(); err != nil {
		return nil, err
	}
	log.Add("Model",
		fmt.Sprintf("%d nodes, %d spans, total length %.3f m", len(a.nodes), len(a.spans), a.length()),
		calclog.V("restraints", float64(a.restraints()), ""))

	a.fixedEndMoments(log)
	a.findCantilevers(log)

	n := a.assignDOFs()
	theta := make(linalg.Vector, n)
	if n == 0 {
		log.Add("Joint rotations", "no rotational unknowns, all joints restrained")
	} else {
		K, F := a.assemble()
		log.Add("Stiffness system",
			fmt.Sprintf("%d x %d system K·θ = F", n, n),
			systemValues(K, F)...)
		theta, err = linalg.SolveLinearSystem(K, F)
		if err != nil {
			return nil, err
		}
		values := make([]calclog.Value, 0, n)
		for _, nd := range a.nodes {
			if nd.dof >= 0 {
				values = append(values, calclog.V("θ "+nd.id, theta[nd.dof], "rad"))
			}
		}
		log.Add("Joint rotations", "solution of K·θ = F", values...)
	}

	res := &Result{Name: s.doc.Name, Log: log}
	for _, nd := range a.nodes {
		r := NodeRotation{Node: nd.id}
		if nd.dof >= 0 {
			r.Rotation = theta[nd.dof]
			r.Unknown = true
		}
		res.Rotations = append(res.Rotations, r)
	}

	res.Spans = a.endActions(theta, log)
	res.Reactions = a.reactions(res.Spans, log)
	res.Diagram = a.diagram(res.Spans)
	res.Summary = a.summarize(res)
	log.Add("Equilibrium",
		"sum of applied loads against sum of vertical reactions",
		calclog.V("ΣP", res.Summary.TotalLoad, "kN"),
		calclog.V("ΣR", res.Summary.TotalReaction, "kN"),
		calclog.V("difference", res.Summary.TotalReaction-res.Summary.TotalLoad, "kN"))
	return res, nil
}

// checkStability rejects beams that cannot carry any load
func (a *arena) checkStability() error {
	if len(a.nodes) < 2 {
		return model.Unstablef("beam needs at least 2 nodes, got %d", len(a.nodes))
	}
	if len(a.spans) < 1 {
		return model.Unstablef("beam has no spans")
	}
	if r := a.restraints(); r < 2 {
		return model.Unstablef("beam has %d support restraints, needs at least 2", r)
	}
	for _, nd := range a.nodes {
		if len(nd.spans) == 0 {
			return model.Inputf("node %q is not connected to any span", nd.id)
		}
	}
	return nil
}

// fixedEndMoments sums the fixed-end moments of every span's loads
func (a *arena) fixedEndMoments(log *calclog.Log) {
	for k := range a.spans {
		sp := &a.spans[k]
		for _, l := range sp.loads {
			fs, fe := fem.FixedEndMoments(l, sp.length)
			sp.femStart += fs
			sp.femEnd += fe
		}
		log.Add("Fixed-end moments "+sp.id,
			fmt.Sprintf("%d load(s) on L = %.3f m, EI = %.1f kN·m²", len(sp.loads), sp.length, sp.ei),
			calclog.V("FEM "+a.nodes[sp.i].id+a.nodes[sp.j].id, sp.femStart, "kN·m"),
			calclog.V("FEM "+a.nodes[sp.j].id+a.nodes[sp.i].id, sp.femEnd, "kN·m"))
	}
}

// findCantilevers marks spans ending at a free node that terminates no
// other span. Free nodes joining several spans stay rotation unknowns.
func (a *arena) findCantilevers(log *calclog.Log) {
	for idx := range a.nodes {
		nd := &a.nodes[idx]
		if nd.support != model.SupportFree || len(nd.spans) != 1 {
			continue
		}
		sp := &a.spans[nd.spans[0]]
		if sp.tip >= 0 {
			// both ends free: leave the span to the stiffness solve
			continue
		}
		sp.tip = idx
		nd.tip = true
		root := sp.i
		if idx == sp.i {
			root = sp.j
		}
		log.Addf("Cantilever "+sp.id, "tip %s, root %s: statically determinate, root moment %.4f kN·m",
			nd.id, a.nodes[root].id, sp.rootMoment())
	}
}

// rootMoment is the clockwise end moment at the supported end of a
// cantilever span, from statics with zero moment and shear at the tip
func (sp *span) rootMoment() float64 {
	var ri, rj float64
	for _, l := range sp.loads {
		ri0, rj0 := fem.SimpleReactions(l, sp.length)
		ri += ri0
		rj += rj0
	}
	if sp.tip == sp.j {
		return -rj * sp.length
	}
	return ri * sp.length
}

// assignDOFs numbers the rotation unknowns and returns their count
func (a *arena) assignDOFs() int {
	n := 0
	for k := range a.nodes {
		nd := &a.nodes[k]
		if nd.support == model.SupportFixed || nd.tip {
			nd.dof = -1
			continue
		}
		nd.dof = n
		n++
	}
	return n
}

// chord is the clockwise chord rotation of a span from support settlement
func (a *arena) chord(sp span) float64 {
	return (a.nodes[sp.j].settlement - a.nodes[sp.i].settlement) / sp.length
}

// assemble builds the joint equilibrium system K·θ = F
func (a *arena) assemble() (linalg.Matrix, linalg.Vector) {
	n := 0
	for _, nd := range a.nodes {
		if nd.dof >= 0 {
			n++
		}
	}
	K := linalg.Zeros(n, n)
	F := make(linalg.Vector, n)

	for _, sp := range a.spans {
		di, dj := a.nodes[sp.i].dof, a.nodes[sp.j].dof
		if sp.tip >= 0 {
			root := di
			if sp.tip == sp.i {
				root = dj
			}
			if root >= 0 {
				F[root] -= sp.rootMoment()
			}
			continue
		}
		k := sp.ei / sp.length
		psi := a.chord(sp)
		// settlement enters F only against a fixed far end
		if di >= 0 {
			K[di][di] += 4 * k
			F[di] -= sp.femStart
			if a.nodes[sp.j].support == model.SupportFixed {
				F[di] += 6 * k * psi
			}
		}
		if dj >= 0 {
			K[dj][dj] += 4 * k
			F[dj] -= sp.femEnd
			if a.nodes[sp.i].support == model.SupportFixed {
				F[dj] += 6 * k * psi
			}
		}
		if di >= 0 && dj >= 0 {
			K[di][dj] += 2 * k
			K[dj][di] += 2 * k
		}
	}
	return K, F
}

// endActions back-substitutes the rotations into the slope-deflection
// equations and resolves the end shears
func (a *arena) endActions(theta linalg.Vector, log *calclog.Log) []SpanResult {
	rot := func(idx int) float64 {
		if d := a.nodes[idx].dof; d >= 0 {
			return theta[d]
		}
		return 0
	}

	out := make([]SpanResult, 0, len(a.spans))
	for _, sp := range a.spans {
		r := SpanResult{
			ID:         sp.id,
			Start:      a.nodes[sp.i].id,
			End:        a.nodes[sp.j].id,
			Length:     sp.length,
			EI:         sp.ei,
			FEMStart:   sp.femStart,
			FEMEnd:     sp.femEnd,
			Cantilever: sp.tip >= 0,
		}
		switch {
		case sp.tip == sp.j:
			r.MomentStart = sp.rootMoment()
		case sp.tip == sp.i:
			r.MomentEnd = sp.rootMoment()
		default:
			c := 2 * sp.ei / sp.length
			ti, tj, psi := rot(sp.i), rot(sp.j), a.chord(sp)
			r.MomentStart = sp.femStart + c*(2*ti+tj-3*psi)
			r.MomentEnd = sp.femEnd + c*(2*tj+ti-3*psi)
		}

		vi, vj := sp.endShears(r.MomentStart, r.MomentEnd)
		r.ShearStart = vi
		r.ShearEnd = -vj
		out = append(out, r)

		log.Add("End moments "+sp.id,
			"M = FEM + (2EI/L)(2θnear + θfar − 3ψ); V = R0 ∓ (Mij + Mji)/L",
			calclog.V("M "+r.Start+r.End, r.MomentStart, "kN·m"),
			calclog.V("M "+r.End+r.Start, r.MomentEnd, "kN·m"),
			calclog.V("V "+r.Start, vi, "kN"),
			calclog.V("V "+r.End, vj, "kN"))
	}
	return out
}

// endShears returns the upward end reactions of the span given its
// clockwise end moments
func (sp span) endShears(mij, mji float64) (vi, vj float64) {
	for _, l := range sp.loads {
		ri, rj := fem.SimpleReactions(l, sp.length)
		vi += ri
		vj += rj
	}
	m := (mij + mji) / sp.length
	return vi - m, vj + m
}

// reactions sums the span end shears and moments at every node but the
// cantilever tips. An interior free node is held vertically by the
// rotation-only model, so it reports the force that holds it.
func (a *arena) reactions(spans []SpanResult, log *calclog.Log) []Reaction {
	force := make([]float64, len(a.nodes))
	moment := make([]float64, len(a.nodes))
	for k, sp := range a.spans {
		vi, vj := sp.endShears(spans[k].MomentStart, spans[k].MomentEnd)
		force[sp.i] += vi
		force[sp.j] += vj
		moment[sp.i] += spans[k].MomentStart
		moment[sp.j] += spans[k].MomentEnd
	}

	var out []Reaction
	var values []calclog.Value
	for idx, nd := range a.nodes {
		if nd.tip {
			continue
		}
		r := Reaction{Node: nd.id, Support: string(nd.support), Force: force[idx]}
		values = append(values, calclog.V("R "+nd.id, r.Force, "kN"))
		if nd.support == model.SupportFixed {
			r.Moment = moment[idx]
			values = append(values, calclog.V("M "+nd.id, r.Moment, "kN·m"))
		}
		out = append(out, r)
	}
	log.Add("Support reactions", "sum of span end shears (and end moments at fixed supports)", values...)
	return out
}

// summarize finds the governing diagram values and the load totals
func (a *arena) summarize(res *Result) Summary {
	var s Summary
	track := func(v, at float64, max, maxAt *float64) {
		if math.Abs(v) > math.Abs(*max) {
			*max, *maxAt = v, at
		}
	}
	for _, p := range res.Diagram {
		track(p.Moment, p.X, &s.MaxMoment, &s.MaxMomentAt)
		track(p.Shear, p.X, &s.MaxShear, &s.MaxShearAt)
		track(p.Deflection, p.X, &s.MaxDeflection, &s.MaxDeflectionAt)
	}
	// support peaks may fall between samples
	for k, sp := range a.spans {
		r := res.Spans[k]
		track(r.MomentStart, sp.offset, &s.MaxMoment, &s.MaxMomentAt)
		track(-r.MomentEnd, sp.offset+sp.length, &s.MaxMoment, &s.MaxMomentAt)
		track(r.ShearStart, sp.offset, &s.MaxShear, &s.MaxShearAt)
		track(r.ShearEnd, sp.offset+sp.length, &s.MaxShear, &s.MaxShearAt)
	}

	for _, sp := range a.spans {
		for _, l := range sp.loads {
			f, _ := fem.Resultant(l)
			s.TotalLoad += f
		}
	}
	for _, r := range res.Reactions {
		s.TotalReaction += r.Force
	}
	return s
}

// systemValues flattens the assembled system for the calculation log
func systemValues(K linalg.Matrix, F linalg.Vector) []calclog.Value {
	var values []calclog.Value
	for r := range K {
		for c := range K[r] {
			if K[r][c] != 0 {
				values = append(values, calclog.V(fmt.Sprintf("K[%d][%d]", r+1, c+1), K[r][c], "kN·m"))
			}
		}
	}
	for r := range F {
		values = append(values, calclog.V(fmt.Sprintf("F[%d]", r+1), F[r], "kN·m"))
	}
	return values
}
