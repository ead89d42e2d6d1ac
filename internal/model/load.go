package model

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/fem"
)

// LoadType discriminates the load union
type LoadType string

const (
	LoadPoint  LoadType = "point"
	LoadUDL    LoadType = "udl"
	LoadVDL    LoadType = "vdl"
	LoadMoment LoadType = "moment"
	LoadJoint  LoadType = "joint"
)

// Load is the document form of every load. Type selects which fields are
// meaningful:
//
//	point   P at A (beam, m) or Position (frame, 0-1)
//	udl     W over [Start, End]
//	vdl     W1 -> W2 over [Start, End]
//	moment  M at A or Position
//	joint   Fx, Fy, M at Node (frame only)
//
// Beam loads reference Span, frame member loads reference Member. Omitted
// Start/End cover the whole span.
type Load struct {
	Type     LoadType `json:"type"`
	Span     string   `json:"span,omitempty"`
	Member   string   `json:"member,omitempty"`
	Node     string   `json:"node,omitempty"`
	Case     string   `json:"case,omitempty"`
	P        float64  `json:"p,omitempty"`
	M        float64  `json:"m,omitempty"`
	W        float64  `json:"w,omitempty"`
	W1       float64  `json:"w1,omitempty"`
	W2       float64  `json:"w2,omitempty"`
	A        float64  `json:"a,omitempty"`
	Position float64  `json:"position,omitempty"`
	Start    *float64 `json:"start,omitempty"`
	End      *float64 `json:"end,omitempty"`
	Fx       float64  `json:"fx,omitempty"`
	Fy       float64  `json:"fy,omitempty"`
}

// Clone returns a copy that shares no pointers with l
func (l Load) Clone() Load {
	if l.Start != nil {
		s := *l.Start
		l.Start = &s
	}
	if l.End != nil {
		e := *l.End
		l.End = &e
	}
	return l
}

// Scaled returns a copy with every magnitude multiplied by f
func (l Load) Scaled(f float64) Load {
	c := l.Clone()
	c.P *= f
	c.M *= f
	c.W *= f
	c.W1 *= f
	c.W2 *= f
	c.Fx *= f
	c.Fy *= f
	return c
}

// extent returns the loaded region, defaulting to [0, full]
func (l Load) extent(full float64) (start, end float64) {
	start, end = 0, full
	if l.Start != nil {
		start = *l.Start
	}
	if l.End != nil {
		end = *l.End
	}
	return
}

// SpanLoad converts a beam load into a span-local load on a span of length L
func (l Load) SpanLoad(L float64) (fem.Load, error) {
	return l.toFEM(L, 1, L, l.A)
}

// MemberLoad converts a frame member load, whose positions are normalized
// to 0-1, into a member-local load on a member of length L
func (l Load) MemberLoad(L float64) (fem.Load, error) {
	return l.toFEM(L, L, 1, l.Position)
}

// toFEM scales positions by scale after checking them against [0, limit]
func (l Load) toFEM(L, scale, limit, at float64) (fem.Load, error) {
	switch l.Type {
	case LoadPoint, LoadMoment:
		if at < 0 || at > limit {
			return nil, fmt.Errorf("%s load position %g outside [0, %g]", l.Type, at, limit)
		}
		if l.Type == LoadPoint {
			return fem.Point{P: l.P, A: at * scale}, nil
		}
		return fem.Moment{M: l.M, A: at * scale}, nil
	case LoadUDL, LoadVDL:
		start, end := l.extent(limit)
		if start < 0 || end > limit {
			return nil, fmt.Errorf("%s load region [%g, %g] outside [0, %g]", l.Type, start, end, limit)
		}
		if start >= end {
			return nil, fmt.Errorf("%s load start %g must be less than end %g", l.Type, start, end)
		}
		if l.Type == LoadUDL {
			return fem.Uniform{W: l.W, Start: start * scale, End: end * scale}, nil
		}
		return fem.Varying{W1: l.W1, W2: l.W2, Start: start * scale, End: end * scale}, nil
	case LoadJoint:
		return nil, fmt.Errorf("joint load cannot act on a span")
	default:
		return nil, fmt.Errorf("unknown load type %q", l.Type)
	}
}
