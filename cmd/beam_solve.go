package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/beam"
	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/report"
)

var beamSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a continuous beam",
	Long: `Solve a continuous beam described in a JSON document by the
slope-deflection method and print joint rotations, span end moments,
support reactions and the governing values.

Span end moments are clockwise-positive; diagram moments are
sagging-positive.

Examples:
  # Solve and print the tables
  goframe beam solve -f beam.json

  # Draw diagrams and show the calculation log
  goframe beam solve -f beam.json --diagram --log

  # Factored loads for combination 2 (1.2D + 1.6L)
  goframe beam solve -f beam.json --combo 2

  # Envelope of all NSCP combinations with a PDF report
  goframe beam solve -f beam.json --envelope --pdf report.pdf

Example JSON file structure:
{
  "defaultEI": 50000,
  "nodes": [
    {"id": "A", "x": 0, "support": "pinned"},
    {"id": "B", "x": 5, "support": "pinned"},
    {"id": "C", "x": 10, "support": "roller"}
  ],
  "spans": [
    {"id": "AB", "start": "A", "end": "B"},
    {"id": "BC", "start": "B", "end": "C"}
  ],
  "loads": [
    {"type": "udl", "span": "AB", "w": 10, "case": "D"},
    {"type": "point", "span": "BC", "p": 20, "a": 2.5, "case": "L"}
  ]
}`,
	Run: runBeamSolve,
}

func init() {
	beamCmd.AddCommand(beamSolveCmd)
	addSolveFlags(beamSolveCmd)
}

func runBeamSolve(cmd *cobra.Command, args []string) {
	doc, err := model.LoadBeamFile(solveFile)
	exitOnError(err)

	var env *nscp.Envelope
	var res *beam.Result
	switch {
	case solveEnvelope:
		table, err := comboTable()
		exitOnError(err)
		env, err = nscp.BeamEnvelope(doc, table)
		exitOnError(err)
		res = env.GoverningCase().Beam
	case solveCombo != "":
		lc, err := selectedCombo()
		exitOnError(err)
		doc, err = nscp.ApplyBeam(doc, lc)
		exitOnError(err)
		fallthrough
	default:
		res, err = beam.NewSolver(doc).Solve()
		exitOnError(err)
	}

	if solveJSON {
		if env != nil {
			exitOnError(printJSON(env))
		} else {
			exitOnError(printJSON(res))
		}
		return
	}

	title := "CONTINUOUS BEAM ANALYSIS - SLOPE DEFLECTION"
	if res.Name != "" {
		title += " (" + res.Name + ")"
	}
	printHeader(title)
	if env != nil {
		printEnvelope(env)
	}
	printBeamResult(res)

	if solveDiagram {
		printBeamDiagrams(doc, res)
	}
	if solveLog {
		w := printSection("CALCULATION LOG")
		w.Flush()
		fmt.Print(res.Log.String())
		fmt.Println()
	}

	if solveOutput != "" {
		names := []string{"shear", "moment", "deflection"}
		var series []diagram.Series
		for _, q := range names {
			xs, ys := res.Series(q)
			series = append(series, diagram.Series{
				Title:  res.Name + " " + beamLabels[q].title,
				XLabel: "x (m)",
				YLabel: beamLabels[q].unit,
				X:      xs,
				Y:      ys,
			})
		}
		exitOnError(exportSeries(series, names))
	}
	if solvePDF != "" {
		exitOnError(writeFile(solvePDF, "Report", func(w io.Writer) error {
			return report.WriteBeamPDF(w, "", res)
		}))
	}
	if solveXLSX != "" {
		exitOnError(writeFile(solveXLSX, "Workbook", func(w io.Writer) error {
			return report.WriteBeamWorkbook(w, res)
		}))
	}
}

var beamLabels = map[string]struct{ title, unit string }{
	"shear":      {"Shear Force", "V (kN)"},
	"moment":     {"Bending Moment", "M (kN·m)"},
	"deflection": {"Deflection", "δ (m, downward)"},
}

func printBeamResult(res *beam.Result) {
	w := printSection("JOINT ROTATIONS")
	fmt.Fprintf(w, "  Node\tθ (rad)\tStatus\n")
	for _, r := range res.Rotations {
		status := "restrained"
		if r.Unknown {
			status = "solved"
		}
		fmt.Fprintf(w, "  %s\t%.6e\t%s\n", r.Node, r.Rotation, status)
	}
	w.Flush()
	fmt.Println()

	w = printSection("SPAN END ACTIONS (clockwise +)")
	fmt.Fprintf(w, "  Span\tNodes\tL (m)\tFEM i\tFEM j\tM i\tM j\tV i\tV j\n")
	for _, sp := range res.Spans {
		name := sp.ID
		if sp.Cantilever {
			name += "*"
		}
		fmt.Fprintf(w, "  %s\t%s-%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			name, sp.Start, sp.End, sp.Length, sp.FEMStart, sp.FEMEnd,
			sp.MomentStart, sp.MomentEnd, sp.ShearStart, sp.ShearEnd)
	}
	w.Flush()
	fmt.Println("  * cantilever, solved by statics")
	fmt.Println()

	w = printSection("SUPPORT REACTIONS")
	fmt.Fprintf(w, "  Node\tSupport\tR (kN)\tM (kN·m)\n")
	for _, r := range res.Reactions {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.3f\n", r.Node, r.Support, r.Force, r.Moment)
	}
	w.Flush()
	fmt.Println()

	s := res.Summary
	fmt.Print(diagram.DrawSummaryBox("SUMMARY", []string{
		fmt.Sprintf("Max moment     = %.3f kN·m at x = %.3f m", s.MaxMoment, s.MaxMomentAt),
		fmt.Sprintf("Max shear      = %.3f kN at x = %.3f m", s.MaxShear, s.MaxShearAt),
		fmt.Sprintf("Max deflection = %.6f m at x = %.3f m", s.MaxDeflection, s.MaxDeflectionAt),
		fmt.Sprintf("Total load     = %.3f kN", s.TotalLoad),
		fmt.Sprintf("Total reaction = %.3f kN", s.TotalReaction),
	}))
	fmt.Println()
}

func printBeamDiagrams(doc *model.BeamDocument, res *beam.Result) {
	var xs []float64
	var supports, ids []string
	for _, n := range doc.Nodes {
		xs = append(xs, n.X)
		supports = append(supports, string(n.Support))
		ids = append(ids, n.ID)
	}
	w := printSection("BEAM")
	w.Flush()
	fmt.Print(diagram.DrawSupports(xs, supports, ids, 60))
	fmt.Println()

	for _, q := range []string{"shear", "moment"} {
		_, ys := res.Series(q)
		fmt.Fprintln(os.Stdout, diagram.ASCIIPlot(beamLabels[q].title+" "+beamLabels[q].unit, resample(ys, 60), 10))
		fmt.Println()
	}
}

// resample picks n evenly spaced values so plots fit the terminal
func resample(ys []float64, n int) []float64 {
	if len(ys) <= n || n < 2 {
		return ys
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = ys[k*(len(ys)-1)/(n-1)]
	}
	return out
}
