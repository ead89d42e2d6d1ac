package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/nscp"
)

const (
	rule    = "═══════════════════════════════════════════════════════════════"
	subrule = "───────────────────────────────────────────────────────────────"
)

// Output options shared by the solve commands
var (
	solveFile     string
	solveLog      bool
	solveDiagram  bool
	solveOutput   string
	solvePDF      string
	solveXLSX     string
	solveJSON     bool
	solveCombo    string
	solveEnvelope bool
	solveTable    string
)

func addSolveFlags(c *cobra.Command) {
	c.Flags().StringVarP(&solveFile, "file", "f", "", "JSON model document [required]")
	c.Flags().BoolVar(&solveLog, "log", false, "Print the calculation log")
	c.Flags().BoolVarP(&solveDiagram, "diagram", "d", false, "Draw ASCII shear and moment diagrams")
	c.Flags().StringVarP(&solveOutput, "output", "o", "", "Export diagrams to image files (png, svg, pdf)")
	c.Flags().StringVar(&solvePDF, "pdf", "", "Write a PDF calculation report to this file")
	c.Flags().StringVar(&solveXLSX, "xlsx", "", "Write an XLSX result workbook to this file")
	c.Flags().BoolVar(&solveJSON, "json", false, "Print the result as JSON instead of tables")
	c.Flags().StringVar(&solveCombo, "combo", "", "Factor the loads with this load combination id")
	c.Flags().BoolVar(&solveEnvelope, "envelope", false, "Solve every load combination and report the governing one")
	c.Flags().StringVar(&solveTable, "table", "nscp", "Load combination table: nscp or simplified")
	c.MarkFlagRequired("file")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// comboTable resolves the --table flag
func comboTable() ([]nscp.LoadCombination, error) {
	table, ok := nscp.Table(solveTable)
	if !ok {
		return nil, fmt.Errorf("unknown load combination table %q (use nscp or simplified)", solveTable)
	}
	return table, nil
}

// selectedCombo resolves the --combo flag against the --table flag
func selectedCombo() (nscp.LoadCombination, error) {
	table, err := comboTable()
	if err != nil {
		return nscp.LoadCombination{}, err
	}
	lc, ok := nscp.Find(table, solveCombo)
	if !ok {
		return lc, fmt.Errorf("no load combination %q in table %s", solveCombo, solveTable)
	}
	return lc, nil
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("     %s\n", title)
	fmt.Println(rule)
	fmt.Println()
}

func printSection(title string) *tabwriter.Writer {
	fmt.Println(title + ":")
	fmt.Println(subrule)
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEnvelope(env *nscp.Envelope) {
	w := printSection("LOAD COMBINATIONS")
	fmt.Fprintf(w, "  #\tCombination\tMax M (kN·m)\tMax V (kN)\n")
	fmt.Fprintf(w, "  ─\t───────────\t────────────\t──────────\n")
	for k, c := range env.Cases {
		marker := ""
		if k == env.Governing {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.3f%s\n", c.Combo.ID, c.Combo.Description, c.MaxMoment, c.MaxShear, marker)
	}
	w.Flush()
	fmt.Println()
}

// suffixed inserts a suffix before the extension: out.png -> out_moment.png
func suffixed(filename, suffix string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_" + suffix + ext
}

func exportSeries(series []diagram.Series, names []string) error {
	for k, s := range series {
		name := suffixed(solveOutput, names[k])
		if err := diagram.ExportDiagram(s, name); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
		fmt.Printf("  Diagram exported to: %s\n", name)
	}
	return nil
}

// writeFile creates filename and hands it to write
func writeFile(filename, what string, write func(io.Writer) error) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("  %s written to: %s\n", what, filename)
	return nil
}
