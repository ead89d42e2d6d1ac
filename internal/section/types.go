package section

import "fmt"

// Section represents a member cross-section defined by its outline.
// The outline is given in a local coordinate system where:
// - Y-axis points upward (bending about the horizontal centroidal axis)
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Section geometry defined by vertices (in mm)
	// Vertices should be defined counter-clockwise for the outer boundary
	// The section is assumed to be a simple polygon (no holes)
	Vertices []Point `json:"vertices"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"` // mm
	Y float64 `json:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 `json:"width"`  // Maximum width (mm)
	Height float64 `json:"height"` // Total height (mm)
	Area   float64 `json:"area"`   // Gross area (mm²)

	// Centroid location
	CentroidX float64 `json:"centroidX"` // mm
	CentroidY float64 `json:"centroidY"` // mm

	// Second moments of area about the centroidal axes
	Ixx float64 `json:"ixx"` // mm⁴, bending in the plane of the frame
	Iyy float64 `json:"iyy"` // mm⁴

	// Bounding box
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Rectangle builds a b x h section with its origin at the bottom-left corner
func Rectangle(name string, b, h float64) *Section {
	return &Section{
		Name: name,
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: b, Y: 0},
			{X: b, Y: h},
			{X: 0, Y: h},
		},
	}
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	for i, v := range s.Vertices {
		j := (i + 1) % len(s.Vertices)
		if v == s.Vertices[j] {
			return &ValidationError{msg: fmt.Sprintf("vertices %d and %d coincide", i+1, j+1)}
		}
	}
	if area, _, _ := s.calculateAreaAndCentroid(); area <= 0 {
		return &ValidationError{"section outline encloses no area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
