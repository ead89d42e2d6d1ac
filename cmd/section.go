package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/section"
)

var (
	sectionFile   string
	sectionWidth  float64
	sectionHeight float64
	sectionFc     float64
	sectionE      float64
	sectionOutput string
	sectionJSON   bool
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Section properties for member stiffness",
	Long: `Compute the geometric properties of a polygonal cross-section:
area, centroid and second moments of area. With a modulus the flexural
and axial rigidities used by "eiMode": "section" are printed as well.

The section is either read from a JSON file or given as a rectangle.

Examples:
  # Rectangle 300 x 500 mm in f'c = 28 MPa concrete
  goframe section --width 300 --height 500 --fc 28

  # T-beam from a file, steel modulus, outline exported
  goframe section -f tbeam.json --e 200 --output tbeam.png

Example JSON file structure:
{
  "name": "T-Beam Section",
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 300, "y": 0},
    {"x": 300, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": -300, "y": 500},
    {"x": -300, "y": 400},
    {"x": 0, "y": 400}
  ]
}`,
	Run: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "JSON section file")
	sectionCmd.Flags().Float64VarP(&sectionWidth, "width", "b", 0, "Rectangle width (mm)")
	sectionCmd.Flags().Float64Var(&sectionHeight, "height", 0, "Rectangle height (mm)")
	sectionCmd.Flags().Float64Var(&sectionFc, "fc", 0, "Concrete strength f'c (MPa), sets E = 4700√f'c")
	sectionCmd.Flags().Float64Var(&sectionE, "e", 0, "Elastic modulus (GPa), overrides --fc")
	sectionCmd.Flags().StringVarP(&sectionOutput, "output", "o", "", "Export the outline to file (png, svg, pdf)")
	sectionCmd.Flags().BoolVar(&sectionJSON, "json", false, "Print the properties as JSON")
	sectionCmd.MarkFlagsMutuallyExclusive("file", "width")
}

func runSection(cmd *cobra.Command, args []string) {
	var sec *section.Section
	switch {
	case sectionFile != "":
		var err error
		sec, err = section.LoadFromFile(sectionFile)
		exitOnError(err)
	case sectionWidth > 0 && sectionHeight > 0:
		sec = section.Rectangle(fmt.Sprintf("%.0f x %.0f", sectionWidth, sectionHeight), sectionWidth, sectionHeight)
	default:
		exitOnError(fmt.Errorf("give a section file (-f) or --width and --height"))
	}
	props := sec.CalculateProperties()

	e := sectionE
	if e == 0 && sectionFc > 0 {
		e = nscp.GPa(nscp.Ec(sectionFc))
	}
	var ei, ea float64
	if e > 0 {
		var err error
		ei, ea, err = model.Rigidity{Mode: model.EISection, E: e, Section: sec}.Resolve(0)
		exitOnError(err)
	}

	if sectionJSON {
		exitOnError(printJSON(struct {
			*section.Properties
			E  float64 `json:"e,omitempty"`
			EI float64 `json:"ei,omitempty"`
			EA float64 `json:"ea,omitempty"`
		}{props, e, ei, ea}))
		return
	}

	printHeader("SECTION PROPERTIES")
	if sec.Name != "" {
		fmt.Printf("  Section: %s\n", sec.Name)
	}
	if sec.Description != "" {
		fmt.Printf("  %s\n", sec.Description)
	}
	fmt.Println()

	w := printSection("GEOMETRY")
	fmt.Fprintf(w, "  Vertices:\t%d\n", len(sec.Vertices))
	fmt.Fprintf(w, "  Width:\t%.2f mm\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.2f mm\n", props.Height)
	fmt.Fprintf(w, "  Area (A):\t%.2f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x̄, ȳ):\t(%.2f, %.2f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Width at centroid:\t%.2f mm\n", sec.WidthAtY(props.CentroidY))
	fmt.Fprintf(w, "  Ixx:\t%.4e mm⁴\n", props.Ixx)
	fmt.Fprintf(w, "  Iyy:\t%.4e mm⁴\n", props.Iyy)
	w.Flush()
	fmt.Println()

	if e > 0 {
		w = printSection("RIGIDITY")
		if sectionE == 0 {
			fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", sectionFc)
		}
		fmt.Fprintf(w, "  E:\t%.3f GPa\n", e)
		fmt.Fprintf(w, "  EI:\t%.2f kN·m²\n", ei)
		fmt.Fprintf(w, "  EA:\t%.2f kN\n", ea)
		w.Flush()
		fmt.Println()
	}

	if sectionOutput != "" {
		vertices := make([]diagram.Point, len(sec.Vertices))
		for k, v := range sec.Vertices {
			vertices[k] = diagram.Point{X: v.X, Y: v.Y}
		}
		centroid := diagram.Point{X: props.CentroidX, Y: props.CentroidY}
		exitOnError(diagram.ExportSection(sec.Name, vertices, centroid, sectionOutput))
		fmt.Printf("  Outline exported to: %s\n", sectionOutput)
	}
}
