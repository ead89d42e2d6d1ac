package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/goframe/internal/frame"
)

var (
	diagramColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	fillColor     = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	deflectColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	supportColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	referenceGray = color.Gray{Y: 128}
)

// ExportDiagram exports one diagram to an image file. The format follows
// the extension: .png, .svg or .pdf (png when missing).
func ExportDiagram(s Series, filename string) error {
	if len(s.X) != len(s.Y) || len(s.X) < 2 {
		return fmt.Errorf("diagram %q needs at least two points with matching x and y", s.Title)
	}
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}

	// closed polygon against the axis for the shaded area
	area := make(plotter.XYs, 0, len(pts)+2)
	area = append(area, plotter.XY{X: s.X[0], Y: 0})
	area = append(area, pts...)
	area = append(area, plotter.XY{X: s.X[len(s.X)-1], Y: 0})
	poly, err := plotter.NewPolygon(area)
	if err != nil {
		return err
	}
	poly.Color = fillColor
	poly.LineStyle.Width = 0
	p.Add(poly)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = diagramColor
	p.Add(line)

	zero, err := plotter.NewLine(plotter.XYs{{X: s.X[0], Y: 0}, {X: s.X[len(s.X)-1], Y: 0}})
	if err != nil {
		return err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = referenceGray
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	return save(p, 8*vg.Inch, 4*vg.Inch, filename)
}

// Segment is a straight line between two points
type Segment struct {
	From, To Point
}

// FrameGeometry is the drawable form of a solved frame
type FrameGeometry struct {
	Title     string
	Members   []Segment
	Deflected [][]Point // one polyline per member
	Supports  []Point
	Labels    []string // member ids, aligned with Members
}

// hermiteSegments is the number of segments drawn per deflected member
const hermiteSegments = 10

// FrameFromResult builds the geometry of a frame result. The deflected
// shape is magnified by scale; a scale of zero or less picks one that
// makes the largest displacement a twentieth of the frame size.
func FrameFromResult(res *frame.Result, scale float64) FrameGeometry {
	g := FrameGeometry{Title: res.Name}
	nodes := make(map[string]frame.NodeDisplacement, len(res.Displacements))
	var size, maxDisp float64
	for _, d := range res.Displacements {
		nodes[d.Node] = d
		size = math.Max(size, math.Max(math.Abs(d.X), math.Abs(d.Y)))
		maxDisp = math.Max(maxDisp, math.Hypot(d.DX, d.DY))
	}
	for _, r := range res.Reactions {
		d := nodes[r.Node]
		g.Supports = append(g.Supports, Point{X: d.X, Y: d.Y})
	}
	if scale <= 0 {
		scale = 1
		if maxDisp > 0 && size > 0 {
			scale = size / 20 / maxDisp
		}
	}

	for _, m := range res.Members {
		a, b := nodes[m.Start], nodes[m.End]
		g.Members = append(g.Members, Segment{From: Point{a.X, a.Y}, To: Point{b.X, b.Y}})
		g.Labels = append(g.Labels, m.ID)
		g.Deflected = append(g.Deflected, deflectedMember(a, b, m, scale))
	}
	return g
}

// deflectedMember interpolates the member between its displaced ends:
// linear along the chord, cubic Hermite across it. Released ends are
// drawn with the chord rotation.
func deflectedMember(a, b frame.NodeDisplacement, m frame.MemberResult, scale float64) []Point {
	L := m.Length
	c, s := (b.X-a.X)/L, (b.Y-a.Y)/L
	ui, vi := c*a.DX+s*a.DY, -s*a.DX+c*a.DY
	uj, vj := c*b.DX+s*b.DY, -s*b.DX+c*b.DY
	ti, tj := a.Rotation, b.Rotation

	pts := make([]Point, 0, hermiteSegments+1)
	for k := 0; k <= hermiteSegments; k++ {
		xi := float64(k) / hermiteSegments
		n1 := 1 - 3*xi*xi + 2*xi*xi*xi
		n2 := L * (xi - 2*xi*xi + xi*xi*xi)
		n3 := 3*xi*xi - 2*xi*xi*xi
		n4 := L * (-xi*xi + xi*xi*xi)
		u := (1-xi)*ui + xi*uj
		v := n1*vi + n2*ti + n3*vj + n4*tj
		x := a.X + c*xi*L + scale*(c*u-s*v)
		y := a.Y + s*xi*L + scale*(s*u+c*v)
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// ExportFrame plots the frame outline, its supports and the magnified
// deflected shape
func ExportFrame(g FrameGeometry, filename string) error {
	p := plot.New()
	p.Title.Text = g.Title
	if p.Title.Text == "" {
		p.Title.Text = "Frame"
	}
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	for _, m := range g.Members {
		l, err := plotter.NewLine(plotter.XYs{{X: m.From.X, Y: m.From.Y}, {X: m.To.X, Y: m.To.Y}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.Black
		p.Add(l)
	}

	for _, shape := range g.Deflected {
		pts := make(plotter.XYs, len(shape))
		for i, pt := range shape {
			pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = deflectColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
	}

	if len(g.Supports) > 0 {
		pts := make(plotter.XYs, len(g.Supports))
		for i, s := range g.Supports {
			pts[i] = plotter.XY{X: s.X, Y: s.Y}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = supportColor
		sc.GlyphStyle.Radius = vg.Points(6)
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(sc)
	}

	if len(g.Labels) == len(g.Members) && len(g.Members) > 0 {
		xys := make([]plotter.XY, len(g.Members))
		for i, m := range g.Members {
			xys[i] = plotter.XY{X: (m.From.X + m.To.X) / 2, Y: (m.From.Y + m.To.Y) / 2}
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: g.Labels})
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportSection plots a section outline with its centroidal axes
func ExportSection(name string, vertices []Point, centroid Point, filename string) error {
	if len(vertices) < 3 {
		return fmt.Errorf("section %q needs at least 3 vertices", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline := make(plotter.XYs, len(vertices)+1)
	minX, maxX := vertices[0].X, vertices[0].X
	minY, maxY := vertices[0].Y, vertices[0].Y
	for i, v := range vertices {
		outline[i] = plotter.XY{X: v.X, Y: v.Y}
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	outline[len(vertices)] = outline[0]

	poly, err := plotter.NewPolygon(outline[:len(vertices)])
	if err != nil {
		return err
	}
	poly.Color = fillColor
	poly.LineStyle.Color = color.Black
	poly.LineStyle.Width = vg.Points(2)
	p.Add(poly)

	margin := 0.1 * math.Max(maxX-minX, maxY-minY)
	axes := []plotter.XYs{
		{{X: minX - margin, Y: centroid.Y}, {X: maxX + margin, Y: centroid.Y}},
		{{X: centroid.X, Y: minY - margin}, {X: centroid.X, Y: maxY + margin}},
	}
	for _, ax := range axes {
		l, err := plotter.NewLine(ax)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = deflectColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: centroid.X, Y: centroid.Y}},
		Labels: []string{fmt.Sprintf("C (%.1f, %.1f)", centroid.X, centroid.Y)},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// save writes the plot, creating the directory when needed
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
