package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "Continuous beam and plane frame analysis tool",
	Long: `goframe - Go Beam and Frame Analyzer

A CLI tool for the elastic analysis of continuous beams and
plane rigid frames.

This tool helps structural engineers perform:
  - Continuous beam analysis by the slope-deflection method
  - Plane frame analysis by the direct stiffness method
  - Factored load combinations and envelopes (NSCP 2015)
  - Section property calculation for member stiffness
  - PDF calculation reports and XLSX result workbooks

Models are described in JSON documents.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goframe v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Beam and Frame Analyzer                              ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis of continuous beams and plane frames.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Slope-deflection analysis of continuous beams")
		fmt.Println("    • Direct stiffness analysis of sway and braced frames")
		fmt.Println("    • Support settlements and member end releases")
		fmt.Println("    • NSCP load combinations and envelopes")
		fmt.Println("    • Diagrams, PDF reports and XLSX workbooks")
		fmt.Println("    • HTTP API with an optional project store")
		fmt.Println()
		fmt.Println("  Use 'goframe --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
