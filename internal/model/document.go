// Package model holds the input documents of the beam and frame solvers,
// the tagged load union and the rules that validate them.
package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Support is the boundary condition of a node
type Support string

const (
	SupportFixed  Support = "fixed"
	SupportPinned Support = "pinned"
	SupportRoller Support = "roller"
	SupportFree   Support = "free"
)

// Valid reports whether s is a known support type
func (s Support) Valid() bool {
	switch s {
	case SupportFixed, SupportPinned, SupportRoller, SupportFree:
		return true
	}
	return false
}

// Restraints returns the number of beam restraints the support provides:
// fixed=2 (translation and rotation), pinned/roller=1, free=0
func (s Support) Restraints() int {
	switch s {
	case SupportFixed:
		return 2
	case SupportPinned, SupportRoller:
		return 1
	}
	return 0
}

// BeamDocument is the input document of the continuous beam solver
type BeamDocument struct {
	Name      string     `json:"name,omitempty"`
	DefaultEI float64    `json:"defaultEI,omitempty"` // kN·m²
	Nodes     []BeamNode `json:"nodes"`
	Spans     []Span     `json:"spans"`
	Loads     []Load     `json:"loads"`
}

// BeamNode is a support point along the beam axis
type BeamNode struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"` // m
	Support    Support `json:"support"`
	Settlement float64 `json:"settlement,omitempty"` // m, positive downward
}

// Span connects two beam nodes
type Span struct {
	ID     string  `json:"id"`
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Length float64 `json:"length,omitempty"` // m, derived from node positions when zero
	Rigidity
}

// FrameDocument is the input document of the frame solver
type FrameDocument struct {
	Name           string      `json:"name,omitempty"`
	DefaultEI      float64     `json:"defaultEI,omitempty"` // kN·m²
	IsSway         bool        `json:"isSway"`
	RigidDiaphragm *bool       `json:"rigidDiaphragm,omitempty"` // defaults to true
	Nodes          []FrameNode `json:"nodes"`
	Members        []Member    `json:"members"`
	Loads          []Load      `json:"loads"`
}

// Diaphragm reports whether free nodes of a sway frame share one
// horizontal displacement per story
func (d *FrameDocument) Diaphragm() bool {
	return d.RigidDiaphragm == nil || *d.RigidDiaphragm
}

// FrameNode is a joint of the frame
type FrameNode struct {
	ID              string      `json:"id"`
	X               float64     `json:"x"` // m
	Y               float64     `json:"y"` // m
	Support         Support     `json:"support"`
	Story           *int        `json:"story,omitempty"`
	RollerDirection string      `json:"rollerDirection,omitempty"` // "x" (default) or "y"
	Settlement      *Settlement `json:"settlement,omitempty"`
}

// Settlement is a prescribed support displacement
type Settlement struct {
	Dx       float64 `json:"dx,omitempty"`       // m
	Dy       float64 `json:"dy,omitempty"`       // m
	Rotation float64 `json:"rotation,omitempty"` // rad, counter-clockwise
}

// MemberType classifies a frame member for reporting
type MemberType string

const (
	MemberBeam   MemberType = "beam"
	MemberColumn MemberType = "column"
)

// Member connects two frame nodes
type Member struct {
	ID           string     `json:"id"`
	Start        string     `json:"start"`
	End          string     `json:"end"`
	MemberType   MemberType `json:"memberType,omitempty"`
	ReleaseStart bool       `json:"releaseStart,omitempty"`
	ReleaseEnd   bool       `json:"releaseEnd,omitempty"`
	Rigidity
}

// ReadBeamDocument decodes a beam document
func ReadBeamDocument(r io.Reader) (*BeamDocument, error) {
	var doc BeamDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &InputError{Err: fmt.Errorf("decode beam document: %w", err)}
	}
	return &doc, nil
}

// ReadFrameDocument decodes a frame document
func ReadFrameDocument(r io.Reader) (*FrameDocument, error) {
	var doc FrameDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &InputError{Err: fmt.Errorf("decode frame document: %w", err)}
	}
	return &doc, nil
}

// LoadBeamFile reads a beam document from a JSON file
func LoadBeamFile(path string) (*BeamDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBeamDocument(f)
}

// LoadFrameFile reads a frame document from a JSON file
func LoadFrameFile(path string) (*FrameDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrameDocument(f)
}

// Clone returns a deep copy of the document
func (d *BeamDocument) Clone() *BeamDocument {
	c := *d
	c.Nodes = append([]BeamNode(nil), d.Nodes...)
	c.Spans = append([]Span(nil), d.Spans...)
	c.Loads = cloneLoads(d.Loads)
	return &c
}

// Clone returns a deep copy of the document
func (d *FrameDocument) Clone() *FrameDocument {
	c := *d
	c.Nodes = make([]FrameNode, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Story != nil {
			s := *n.Story
			n.Story = &s
		}
		if n.Settlement != nil {
			s := *n.Settlement
			n.Settlement = &s
		}
		c.Nodes[i] = n
	}
	c.Members = append([]Member(nil), d.Members...)
	c.Loads = cloneLoads(d.Loads)
	return &c
}

func cloneLoads(loads []Load) []Load {
	out := make([]Load, len(loads))
	for i, l := range loads {
		out[i] = l.Clone()
	}
	return out
}
