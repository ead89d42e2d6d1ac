// Package report writes analysis results as PDF calculation reports and
// XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/goframe/internal/beam"
	"github.com/alexiusacademia/goframe/internal/calclog"
	"github.com/alexiusacademia/goframe/internal/frame"
)

// document wraps a gofpdf page with the helpers shared by both reports
type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newDocument(title, subtitle string) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, d.tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if subtitle != "" {
		pdf.Cell(0, 6, d.tr(subtitle))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)
	return d
}

func (d *document) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.Cell(0, 8, d.tr(text))
	d.pdf.Ln(9)
}

// table draws a bordered table with a shaded header row
func (d *document) table(widths []float64, header []string, rows [][]string) {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 228, 240)
	for k, h := range header {
		pdf.CellFormat(widths[k], 6, d.tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for k, cell := range row {
			align := "R"
			if k == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[k], 5.5, d.tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (d *document) keyValues(rows [][2]string) {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 6, d.tr(r[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, d.tr(r[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (d *document) calcLog(log *calclog.Log) {
	if log == nil || log.Len() == 0 {
		return
	}
	d.pdf.AddPage()
	d.heading("Calculation Log")
	d.pdf.SetFont("Courier", "", 8)
	d.pdf.MultiCell(0, 3.8, d.tr(strings.TrimRight(log.String(), "\n")), "", "L", false)
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func f3(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// WriteBeamPDF writes the calculation report of a beam analysis
func WriteBeamPDF(w io.Writer, title string, res *beam.Result) error {
	if title == "" {
		title = "Continuous Beam Analysis"
	}
	d := newDocument(title, res.Name)

	s := res.Summary
	d.heading("Summary")
	d.keyValues([][2]string{
		{"Maximum moment", fmt.Sprintf("%.3f kN·m at x = %.3f m", s.MaxMoment, s.MaxMomentAt)},
		{"Maximum shear", fmt.Sprintf("%.3f kN at x = %.3f m", s.MaxShear, s.MaxShearAt)},
		{"Maximum deflection", fmt.Sprintf("%.6f m at x = %.3f m", s.MaxDeflection, s.MaxDeflectionAt)},
		{"Total load", fmt.Sprintf("%.3f kN", s.TotalLoad)},
		{"Total reaction", fmt.Sprintf("%.3f kN", s.TotalReaction)},
	})

	d.heading("Support Reactions")
	var rows [][]string
	for _, r := range res.Reactions {
		rows = append(rows, []string{r.Node, r.Support, f3(r.Force), f3(r.Moment)})
	}
	d.table([]float64{30, 40, 40, 40}, []string{"Node", "Support", "R (kN)", "M (kN·m)"}, rows)

	d.heading("Span End Actions")
	rows = rows[:0]
	for _, sp := range res.Spans {
		rows = append(rows, []string{
			sp.ID, sp.Start + "-" + sp.End, f3(sp.Length),
			f3(sp.FEMStart), f3(sp.FEMEnd),
			f3(sp.MomentStart), f3(sp.MomentEnd),
			f3(sp.ShearStart), f3(sp.ShearEnd),
		})
	}
	d.table(
		[]float64{16, 20, 16, 21, 21, 22, 22, 21, 21},
		[]string{"Span", "Nodes", "L (m)", "FEM i", "FEM j", "M i", "M j", "V i", "V j"},
		rows,
	)

	d.calcLog(res.Log)
	return d.output(w)
}

// WriteFramePDF writes the calculation report of a frame analysis
func WriteFramePDF(w io.Writer, title string, res *frame.Result) error {
	if title == "" {
		title = "Plane Frame Analysis"
	}
	d := newDocument(title, res.Name)

	s := res.Summary
	d.heading("Summary")
	kv := [][2]string{
		{"Unknowns", fmt.Sprintf("%d", res.Unknowns)},
		{"Maximum moment", fmt.Sprintf("%.3f kN·m (member %s)", s.MaxMoment, s.MaxMomentMember)},
		{"Maximum shear", fmt.Sprintf("%.3f kN (member %s)", s.MaxShear, s.MaxShearMember)},
		{"Maximum axial", fmt.Sprintf("%.3f kN (member %s)", s.MaxAxial, s.MaxAxialMember)},
		{"Applied load", fmt.Sprintf("Fx = %.3f kN, Fy = %.3f kN", s.LoadFX, s.LoadFY)},
		{"Reactions", fmt.Sprintf("Fx = %.3f kN, Fy = %.3f kN", s.ReactionFX, s.ReactionFY)},
	}
	if len(res.Stories) > 0 {
		kv = append(kv, [2]string{"Maximum drift", fmt.Sprintf("%.5f (story %d)", s.MaxDrift, s.MaxDriftStory)})
	}
	d.keyValues(kv)

	d.heading("Nodal Displacements")
	var rows [][]string
	for _, n := range res.Displacements {
		rows = append(rows, []string{n.Node, fmt.Sprintf("%.6f", n.DX), fmt.Sprintf("%.6f", n.DY), fmt.Sprintf("%.6f", n.Rotation)})
	}
	d.table([]float64{30, 45, 45, 45}, []string{"Node", "dx (m)", "dy (m)", "rz (rad)"}, rows)

	d.heading("Support Reactions")
	rows = rows[:0]
	for _, r := range res.Reactions {
		rows = append(rows, []string{r.Node, r.Support, f3(r.FX), f3(r.FY), f3(r.M)})
	}
	d.table([]float64{25, 35, 35, 35, 35}, []string{"Node", "Support", "Fx (kN)", "Fy (kN)", "M (kN·m)"}, rows)

	d.heading("Member End Forces (local)")
	rows = rows[:0]
	for _, m := range res.Members {
		f := m.EndForces
		rows = append(rows, []string{m.ID, f3(f[0]), f3(f[1]), f3(f[2]), f3(f[3]), f3(f[4]), f3(f[5])})
	}
	d.table(
		[]float64{24, 26, 26, 26, 26, 26, 26},
		[]string{"Member", "N i", "V i", "M i", "N j", "V j", "M j"},
		rows,
	)

	d.calcLog(res.Log)
	return d.output(w)
}
