package section

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestRectangleProperties(t *testing.T) {
	s := Rectangle("300x500", 300, 500)
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	p := s.CalculateProperties()

	if p.Area != 150000 {
		t.Fatalf("Area = %v, want 150000", p.Area)
	}
	if p.CentroidX != 150 || p.CentroidY != 250 {
		t.Fatalf("centroid = (%v, %v), want (150, 250)", p.CentroidX, p.CentroidY)
	}
	wantIxx := 300 * math.Pow(500, 3) / 12
	if math.Abs(p.Ixx-wantIxx)/wantIxx > 1e-12 {
		t.Fatalf("Ixx = %v, want %v", p.Ixx, wantIxx)
	}
	wantIyy := 500 * math.Pow(300, 3) / 12
	if math.Abs(p.Iyy-wantIyy) > 1 {
		t.Fatalf("Iyy = %v, want %v", p.Iyy, wantIyy)
	}
	if p.Width != 300 || p.Height != 500 {
		t.Fatalf("bbox = %v x %v", p.Width, p.Height)
	}
}

func TestClockwiseOutline(t *testing.T) {
	s := &Section{Vertices: []Point{{0, 0}, {0, 200}, {100, 200}, {100, 0}}}
	p := s.CalculateProperties()
	want := 100 * math.Pow(200, 3) / 12
	if math.Abs(p.Ixx-want) > 1 {
		t.Fatalf("Ixx = %v, want %v", p.Ixx, want)
	}
}

func TestTeeSection(t *testing.T) {
	// flange 600x100 on a 300x400 web
	s := &Section{Vertices: []Point{
		{150, 0}, {450, 0}, {450, 400}, {600, 400}, {600, 500}, {0, 500}, {0, 400}, {150, 400},
	}}
	p := s.CalculateProperties()

	// web 300x400 at y=200, flange 600x100 at y=450
	aw, af := 300.0*400, 600.0*100
	cy := (aw*200 + af*450) / (aw + af)
	want := 300*math.Pow(400, 3)/12 + aw*math.Pow(cy-200, 2) +
		600*math.Pow(100, 3)/12 + af*math.Pow(cy-450, 2)

	if math.Abs(p.CentroidY-cy) > 1e-9 {
		t.Fatalf("CentroidY = %v, want %v", p.CentroidY, cy)
	}
	if math.Abs(p.Ixx-want)/want > 1e-9 {
		t.Fatalf("Ixx = %v, want %v", p.Ixx, want)
	}
	if w := s.WidthAtY(200); w != 300 {
		t.Fatalf("WidthAtY(200) = %v, want 300", w)
	}
	if w := s.WidthAtY(450); w != 600 {
		t.Fatalf("WidthAtY(450) = %v, want 600", w)
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		s    Section
	}{
		{"too few vertices", Section{Vertices: []Point{{0, 0}, {1, 1}}}},
		{"coincident vertices", Section{Vertices: []Point{{0, 0}, {0, 0}, {1, 1}}}},
		{"collinear", Section{Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sec.json")
	doc := `{"name":"R","vertices":[{"x":0,"y":0},{"x":200,"y":0},{"x":200,"y":400},{"x":0,"y":400}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "R" || len(s.Vertices) != 4 {
		t.Fatalf("loaded %+v", s)
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
