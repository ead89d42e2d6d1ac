package frame

import "github.com/alexiusacademia/goframe/internal/calclog"

// Result holds the complete output of a frame analysis. Displacements and
// reactions use global axes (x right, y up, rotations counter-clockwise);
// member end forces use member local axes. Diagram moments are
// sagging-positive with the member viewed from its start node, axial
// forces are tension-positive.
type Result struct {
	Name          string             `json:"name,omitempty"`
	Unknowns      int                `json:"unknowns"`
	Displacements []NodeDisplacement `json:"displacements"`
	Members       []MemberResult     `json:"members"`
	Reactions     []Reaction         `json:"reactions"`
	Stories       []StoryDrift       `json:"stories,omitempty"`
	Summary       Summary            `json:"summary"`
	Log           *calclog.Log       `json:"log"`
}

// NodeDisplacement is the solved movement of a node
type NodeDisplacement struct {
	Node     string  `json:"node"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Rotation float64 `json:"rotation"`
	Story    int     `json:"story"`
}

// MemberResult holds the end forces and diagrams of one member
type MemberResult struct {
	ID          string         `json:"id"`
	Start       string         `json:"start"`
	End         string         `json:"end"`
	MemberType  string         `json:"memberType,omitempty"`
	Length      float64        `json:"length"`
	Angle       float64        `json:"angle"` // degrees from global x
	EI          float64        `json:"ei"`
	EA          float64        `json:"ea"`
	EndForces   [6]float64     `json:"endForces"` // local [Ni, Vi, Mi, Nj, Vj, Mj]
	Axial       float64        `json:"axial"`
	MomentStart float64        `json:"momentStart"`
	MomentEnd   float64        `json:"momentEnd"`
	Diagram     []MemberSample `json:"diagram"`
}

// MemberSample is one point of a member diagram
type MemberSample struct {
	X      float64 `json:"x"` // m from the start node
	Axial  float64 `json:"axial"`
	Shear  float64 `json:"shear"`
	Moment float64 `json:"moment"`
}

// Reaction is the force a support (or bracing) exerts on a node. Only the
// restrained components are meaningful, as flagged by Restrains.
type Reaction struct {
	Node      string  `json:"node"`
	Support   string  `json:"support"`
	FX        float64 `json:"fx"`
	FY        float64 `json:"fy"`
	M         float64 `json:"m"`
	Restrains [3]bool `json:"restrains"`
}

// StoryDrift is the lateral displacement of one story and its drift
// ratio relative to the story below
type StoryDrift struct {
	Story        int     `json:"story"`
	Elevation    float64 `json:"elevation"`
	Displacement float64 `json:"displacement"`
	Drift        float64 `json:"drift"`
}

// Summary holds the governing values of the analysis
type Summary struct {
	MaxMoment       float64 `json:"maxMoment"`
	MaxMomentMember string  `json:"maxMomentMember"`
	MaxShear        float64 `json:"maxShear"`
	MaxShearMember  string  `json:"maxShearMember"`
	MaxAxial        float64 `json:"maxAxial"`
	MaxAxialMember  string  `json:"maxAxialMember"`
	MaxDrift        float64 `json:"maxDrift"`
	MaxDriftStory   int     `json:"maxDriftStory"`
	LoadFX          float64 `json:"loadFx"`
	LoadFY          float64 `json:"loadFy"`
	ReactionFX      float64 `json:"reactionFx"`
	ReactionFY      float64 `json:"reactionFy"`
}

// Member returns the result of the member with the given id
func (r *Result) Member(id string) (MemberResult, bool) {
	for _, m := range r.Members {
		if m.ID == id {
			return m, true
		}
	}
	return MemberResult{}, false
}

// Displacement returns the displacement of the node with the given id
func (r *Result) Displacement(id string) (NodeDisplacement, bool) {
	for _, d := range r.Displacements {
		if d.Node == id {
			return d, true
		}
	}
	return NodeDisplacement{}, false
}
