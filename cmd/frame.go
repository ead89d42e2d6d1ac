package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/report"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Plane frame analysis",
	Long: `Analyze plane rigid frames by the direct stiffness method.

Subcommands:
  solve    - Solve a frame described in a JSON document

Sway frames share one lateral displacement per story when the
diaphragm is rigid; braced frames are restrained laterally.`,
}

var frameScale float64

var frameSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a plane frame",
	Long: `Solve a plane frame described in a JSON document and print nodal
displacements, member end forces, support reactions and story drifts.

Displacements and reactions use global axes (x right, y up, rotations
counter-clockwise). Member end forces use member local axes.

Examples:
  # Solve a portal frame
  goframe frame solve -f portal.json

  # Export the deflected shape and the member diagrams
  goframe frame solve -f portal.json --output out/portal.png

  # Envelope of the simplified combinations
  goframe frame solve -f portal.json --envelope --table simplified

Example JSON file structure:
{
  "defaultEI": 30000,
  "isSway": true,
  "nodes": [
    {"id": "1", "x": 0, "y": 0, "support": "fixed"},
    {"id": "2", "x": 0, "y": 4, "support": "free"},
    {"id": "3", "x": 6, "y": 4, "support": "free"},
    {"id": "4", "x": 6, "y": 0, "support": "fixed"}
  ],
  "members": [
    {"id": "C1", "start": "1", "end": "2", "memberType": "column"},
    {"id": "B1", "start": "2", "end": "3", "memberType": "beam"},
    {"id": "C2", "start": "4", "end": "3", "memberType": "column"}
  ],
  "loads": [
    {"type": "udl", "member": "B1", "w": 10, "case": "D"},
    {"type": "joint", "node": "2", "fx": 15, "case": "W"}
  ]
}`,
	Run: runFrameSolve,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	frameCmd.AddCommand(frameSolveCmd)
	addSolveFlags(frameSolveCmd)
	frameSolveCmd.Flags().Float64Var(&frameScale, "scale", 0, "Deflected shape magnification for --output (0 picks one)")
}

func runFrameSolve(cmd *cobra.Command, args []string) {
	doc, err := model.LoadFrameFile(solveFile)
	exitOnError(err)

	var env *nscp.Envelope
	var res *frame.Result
	switch {
	case solveEnvelope:
		table, err := comboTable()
		exitOnError(err)
		env, err = nscp.FrameEnvelope(doc, table)
		exitOnError(err)
		res = env.GoverningCase().Frame
	case solveCombo != "":
		lc, err := selectedCombo()
		exitOnError(err)
		doc, err = nscp.ApplyFrame(doc, lc)
		exitOnError(err)
		fallthrough
	default:
		res, err = frame.NewSolver(doc).Solve()
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

	title := "PLANE FRAME ANALYSIS - DIRECT STIFFNESS"
	if res.Name != "" {
		title += " (" + res.Name + ")"
	}
	printHeader(title)
	if env != nil {
		printEnvelope(env)
	}
	printFrameResult(res)

	if solveDiagram {
		for _, m := range res.Members {
			ys := make([]float64, len(m.Diagram))
			for k, s := range m.Diagram {
				ys[k] = s.Moment
			}
			fmt.Println(diagram.ASCIIPlot("Member "+m.ID+" moment (kN·m)", ys, 6))
			fmt.Println()
		}
	}
	if solveLog {
		w := printSection("CALCULATION LOG")
		w.Flush()
		fmt.Print(res.Log.String())
		fmt.Println()
	}

	if solveOutput != "" {
		geom := diagram.FrameFromResult(res, frameScale)
		exitOnError(diagram.ExportFrame(geom, solveOutput))
		fmt.Printf("  Frame exported to: %s\n", solveOutput)

		var series []diagram.Series
		var names []string
		for _, m := range res.Members {
			xs := make([]float64, len(m.Diagram))
			ys := make([]float64, len(m.Diagram))
			for k, s := range m.Diagram {
				xs[k], ys[k] = s.X, s.Moment
			}
			series = append(series, diagram.Series{
				Title:  "Member " + m.ID + " Bending Moment",
				XLabel: "x (m)",
				YLabel: "M (kN·m)",
				X:      xs,
				Y:      ys,
			})
			names = append(names, m.ID+"_moment")
		}
		exitOnError(exportSeries(series, names))
	}
	if solvePDF != "" {
		exitOnError(writeFile(solvePDF, "Report", func(w io.Writer) error {
			return report.WriteFramePDF(w, "", res)
		}))
	}
	if solveXLSX != "" {
		exitOnError(writeFile(solveXLSX, "Workbook", func(w io.Writer) error {
			return report.WriteFrameWorkbook(w, res)
		}))
	}
}

func printFrameResult(res *frame.Result) {
	w := printSection("NODAL DISPLACEMENTS")
	fmt.Fprintf(w, "  Node\tx\ty\tdx (m)\tdy (m)\trz (rad)\tStory\n")
	for _, d := range res.Displacements {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.6e\t%.6e\t%.6e\t%d\n", d.Node, d.X, d.Y, d.DX, d.DY, d.Rotation, d.Story)
	}
	w.Flush()
	fmt.Printf("  %d unknowns\n", res.Unknowns)
	fmt.Println()

	w = printSection("MEMBER END FORCES (local)")
	fmt.Fprintf(w, "  Member\tType\tL (m)\tN i\tV i\tM i\tN j\tV j\tM j\n")
	for _, m := range res.Members {
		f := m.EndForces
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			m.ID, m.MemberType, m.Length, f[0], f[1], f[2], f[3], f[4], f[5])
	}
	w.Flush()
	fmt.Println()

	w = printSection("SUPPORT REACTIONS")
	fmt.Fprintf(w, "  Node\tSupport\tFx (kN)\tFy (kN)\tM (kN·m)\n")
	for _, r := range res.Reactions {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", r.Node, r.Support,
			component(r.FX, r.Restrains[0]), component(r.FY, r.Restrains[1]), component(r.M, r.Restrains[2]))
	}
	w.Flush()
	fmt.Println()

	if len(res.Stories) > 0 {
		w = printSection("STORY DRIFT")
		fmt.Fprintf(w, "  Story\tElevation (m)\tdx (m)\tDrift ratio\n")
		for _, s := range res.Stories {
			fmt.Fprintf(w, "  %d\t%.3f\t%.6e\t%.6f\n", s.Story, s.Elevation, s.Displacement, s.Drift)
		}
		w.Flush()
		fmt.Println()
	}

	s := res.Summary
	fmt.Print(diagram.DrawSummaryBox("SUMMARY", []string{
		fmt.Sprintf("Max moment = %.3f kN·m (member %s)", s.MaxMoment, s.MaxMomentMember),
		fmt.Sprintf("Max shear  = %.3f kN (member %s)", s.MaxShear, s.MaxShearMember),
		fmt.Sprintf("Max axial  = %.3f kN (member %s)", s.MaxAxial, s.MaxAxialMember),
		fmt.Sprintf("Load       = Fx %.3f kN, Fy %.3f kN", s.LoadFX, s.LoadFY),
		fmt.Sprintf("Reactions  = Fx %.3f kN, Fy %.3f kN", s.ReactionFX, s.ReactionFY),
	}))
	fmt.Println()
}

func component(v float64, restrained bool) string {
	if !restrained {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
