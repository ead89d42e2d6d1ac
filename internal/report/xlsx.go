package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/goframe/internal/beam"
	"github.com/alexiusacademia/goframe/internal/calclog"
	"github.com/alexiusacademia/goframe/internal/frame"
)

// Sheet names of the result workbooks
const (
	SheetSummary   = "Summary"
	SheetReactions = "Reactions"
	SheetDiagram   = "Diagram"
	SheetLog       = "Log"
)

type workbook struct {
	f   *excelize.File
	err error
}

func newWorkbook() *workbook {
	f := excelize.NewFile()
	wb := &workbook{f: f}
	wb.err = f.SetSheetName("Sheet1", SheetSummary)
	for _, name := range []string{SheetReactions, SheetDiagram, SheetLog} {
		if wb.err != nil {
			break
		}
		_, wb.err = f.NewSheet(name)
	}
	return wb
}

// row writes values starting at column A of the given 1-based row. The
// first error sticks and later writes are skipped.
func (wb *workbook) row(sheet string, n int, values ...interface{}) {
	if wb.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		wb.err = err
		return
	}
	wb.err = wb.f.SetSheetRow(sheet, cell, &values)
}

func (wb *workbook) log(l *calclog.Log) {
	wb.row(SheetLog, 1, "Step", "Title", "Detail", "Quantity", "Value", "Unit")
	if l == nil {
		return
	}
	n := 2
	for _, e := range l.Entries {
		wb.row(SheetLog, n, e.Step, e.Title, e.Detail)
		n++
		for _, v := range e.Values {
			wb.row(SheetLog, n, "", "", "", v.Name, v.Value, v.Unit)
			n++
		}
	}
}

func (wb *workbook) write(w io.Writer) error {
	defer wb.f.Close()
	if wb.err != nil {
		return fmt.Errorf("building workbook: %w", wb.err)
	}
	wb.f.SetActiveSheet(0)
	if err := wb.f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteBeamWorkbook writes a beam result as an XLSX workbook
func WriteBeamWorkbook(w io.Writer, res *beam.Result) error {
	wb := newWorkbook()

	s := res.Summary
	wb.row(SheetSummary, 1, "Quantity", "Value", "Location (m)", "Unit")
	wb.row(SheetSummary, 2, "Maximum moment", s.MaxMoment, s.MaxMomentAt, "kN·m")
	wb.row(SheetSummary, 3, "Maximum shear", s.MaxShear, s.MaxShearAt, "kN")
	wb.row(SheetSummary, 4, "Maximum deflection", s.MaxDeflection, s.MaxDeflectionAt, "m")
	wb.row(SheetSummary, 5, "Total load", s.TotalLoad, "", "kN")
	wb.row(SheetSummary, 6, "Total reaction", s.TotalReaction, "", "kN")
	n := 8
	wb.row(SheetSummary, n, "Span", "Start", "End", "Length", "EI", "FEM i", "FEM j", "M i", "M j", "V i", "V j")
	for _, sp := range res.Spans {
		n++
		wb.row(SheetSummary, n, sp.ID, sp.Start, sp.End, sp.Length, sp.EI,
			sp.FEMStart, sp.FEMEnd, sp.MomentStart, sp.MomentEnd, sp.ShearStart, sp.ShearEnd)
	}

	wb.row(SheetReactions, 1, "Node", "Support", "Force (kN)", "Moment (kN·m)")
	for k, r := range res.Reactions {
		wb.row(SheetReactions, k+2, r.Node, r.Support, r.Force, r.Moment)
	}

	wb.row(SheetDiagram, 1, "x (m)", "Shear (kN)", "Moment (kN·m)", "Deflection (m)")
	for k, p := range res.Diagram {
		wb.row(SheetDiagram, k+2, p.X, p.Shear, p.Moment, p.Deflection)
	}

	wb.log(res.Log)
	return wb.write(w)
}

// WriteFrameWorkbook writes a frame result as an XLSX workbook. The
// Diagram sheet lists the samples of every member one after another.
func WriteFrameWorkbook(w io.Writer, res *frame.Result) error {
	wb := newWorkbook()

	s := res.Summary
	wb.row(SheetSummary, 1, "Quantity", "Value", "Where")
	wb.row(SheetSummary, 2, "Maximum moment (kN·m)", s.MaxMoment, s.MaxMomentMember)
	wb.row(SheetSummary, 3, "Maximum shear (kN)", s.MaxShear, s.MaxShearMember)
	wb.row(SheetSummary, 4, "Maximum axial (kN)", s.MaxAxial, s.MaxAxialMember)
	wb.row(SheetSummary, 5, "Maximum drift", s.MaxDrift, s.MaxDriftStory)
	wb.row(SheetSummary, 6, "Applied Fx / Fy (kN)", s.LoadFX, s.LoadFY)
	wb.row(SheetSummary, 7, "Reaction Fx / Fy (kN)", s.ReactionFX, s.ReactionFY)
	n := 9
	wb.row(SheetSummary, n, "Node", "x", "y", "dx (m)", "dy (m)", "rz (rad)", "Story")
	for _, d := range res.Displacements {
		n++
		wb.row(SheetSummary, n, d.Node, d.X, d.Y, d.DX, d.DY, d.Rotation, d.Story)
	}
	n += 2
	wb.row(SheetSummary, n, "Member", "Start", "End", "Length", "N i", "V i", "M i", "N j", "V j", "M j")
	for _, m := range res.Members {
		n++
		f := m.EndForces
		wb.row(SheetSummary, n, m.ID, m.Start, m.End, m.Length, f[0], f[1], f[2], f[3], f[4], f[5])
	}

	wb.row(SheetReactions, 1, "Node", "Support", "Fx (kN)", "Fy (kN)", "M (kN·m)")
	for k, r := range res.Reactions {
		wb.row(SheetReactions, k+2, r.Node, r.Support, r.FX, r.FY, r.M)
	}

	wb.row(SheetDiagram, 1, "Member", "x (m)", "Axial (kN)", "Shear (kN)", "Moment (kN·m)")
	n = 1
	for _, m := range res.Members {
		for _, p := range m.Diagram {
			n++
			wb.row(SheetDiagram, n, m.ID, p.X, p.Axial, p.Shear, p.Moment)
		}
	}

	wb.log(res.Log)
	return wb.write(w)
}
