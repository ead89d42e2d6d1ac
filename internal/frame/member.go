package frame

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/fem"
	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
)

// eaFactor approximates EA when a member carries no area
const eaFactor = 1000

// element is the solver's view of a member.
//
// Local axes: x runs from node i to node j, y is x rotated 90°
// counter-clockwise. End vectors are ordered
// [axial_i, shear_i, moment_i, axial_j, shear_j, moment_j] with moments
// counter-clockwise positive.
type element struct {
	id         string
	memberType model.MemberType
	i, j       int
	length     float64
	c, s       float64 // direction cosines of the chord
	ei, ea     float64
	releaseI   bool
	releaseJ   bool
	loads      []fem.Load

	k      linalg.Matrix // local stiffness after condensation
	t      linalg.Matrix
	kg     linalg.Matrix // Tᵗ·k·T
	fixed  linalg.Vector // local fixed-end forces after condensation
	global [6]int        // equation numbers
}

// newElement builds the member between two nodes and its matrices
func newElement(m model.Member, i, j int, start, end model.FrameNode, defaultEI float64) (*element, error) {
	L := model.MemberLength(start, end)
	ei, ea, err := m.Resolve(defaultEI)
	if err != nil {
		return nil, model.Inputf("member %q: %v", m.ID, err)
	}
	if ea <= 0 {
		ea = eaFactor * ei
	}
	e := &element{
		id:         m.ID,
		memberType: m.MemberType,
		i:          i,
		j:          j,
		length:     L,
		c:          (end.X - start.X) / L,
		s:          (end.Y - start.Y) / L,
		ei:         ei,
		ea:         ea,
		releaseI:   m.ReleaseStart,
		releaseJ:   m.ReleaseEnd,
	}
	e.t = e.transform()
	return e, nil
}

// angle is the chord inclination in degrees
func (e *element) angle() float64 {
	return math.Atan2(e.s, e.c) * 180 / math.Pi
}

// localStiffness is the prismatic 6x6 stiffness without releases
func (e *element) localStiffness() linalg.Matrix {
	L := e.length
	a := e.ea / L
	b := 12 * e.ei / (L * L * L)
	c := 6 * e.ei / (L * L)
	d := 4 * e.ei / L
	h := 2 * e.ei / L
	return linalg.Matrix{
		{a, 0, 0, -a, 0, 0},
		{0, b, c, 0, -b, c},
		{0, c, d, 0, -c, h},
		{-a, 0, 0, a, 0, 0},
		{0, -b, -c, 0, b, -c},
		{0, c, h, 0, -c, d},
	}
}

// transform is the block rotation from global to local components
func (e *element) transform() linalg.Matrix {
	t := linalg.Zeros(6, 6)
	for b := 0; b < 6; b += 3 {
		t[b][b], t[b][b+1] = e.c, e.s
		t[b+1][b], t[b+1][b+1] = -e.s, e.c
		t[b+2][b+2] = 1
	}
	return t
}

// prepare computes the condensed local stiffness, fixed-end forces and
// global stiffness of the member
func (e *element) prepare() error {
	k := e.localStiffness()
	f := e.fixedEndForces()

	var released []int
	if e.releaseI {
		released = append(released, 2)
	}
	if e.releaseJ {
		released = append(released, 5)
	}
	if len(released) > 0 {
		var err error
		k, f, err = condense(k, f, released)
		if err != nil {
			return err
		}
	}
	e.k, e.fixed = k, f

	kt, err := k.Mul(e.t)
	if err != nil {
		return err
	}
	e.kg, err = e.t.Transpose().Mul(kt)
	return err
}

// condense removes the released components by static condensation:
// Kcc - Kcr·Krr⁻¹·Krc and fc - Kcr·Krr⁻¹·fr. Released rows and columns
// are left zero.
func condense(k linalg.Matrix, f linalg.Vector, released []int) (linalg.Matrix, linalg.Vector, error) {
	isReleased := make(map[int]bool, len(released))
	for _, r := range released {
		isReleased[r] = true
	}
	var kept []int
	for c := 0; c < 6; c++ {
		if !isReleased[c] {
			kept = append(kept, c)
		}
	}

	krr := linalg.Zeros(len(released), len(released))
	for p, r := range released {
		for q, s := range released {
			krr[p][q] = k[r][s]
		}
	}
	inv, err := krr.Inverse()
	if err != nil {
		return nil, nil, err
	}

	out := linalg.Zeros(6, 6)
	fo := make(linalg.Vector, 6)
	for _, a := range kept {
		fo[a] = f[a]
		for p, r := range released {
			for q, s := range released {
				fo[a] -= k[a][r] * inv[p][q] * f[s]
			}
		}
		for _, b := range kept {
			v := k[a][b]
			for p, r := range released {
				for q, s := range released {
					v -= k[a][r] * inv[p][q] * k[s][b]
				}
			}
			out[a][b] = v
		}
	}
	return out, fo, nil
}

// endForces returns the local end forces for the given global end
// displacements: k·T·d + f_fixed
func (e *element) endForces(d linalg.Vector) (linalg.Vector, error) {
	local, err := e.t.MulVec(d)
	if err != nil {
		return nil, err
	}
	f, err := e.k.MulVec(local)
	if err != nil {
		return nil, err
	}
	return f.Add(e.fixed)
}

// toGlobal rotates a local end vector into global components
func (e *element) toGlobal(f linalg.Vector) (linalg.Vector, error) {
	return e.t.Transpose().MulVec(f)
}
