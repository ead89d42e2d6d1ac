package cmd

import (
	"github.com/spf13/cobra"
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Continuous beam analysis",
	Long: `Analyze continuous beams by the slope-deflection method.

Subcommands:
  solve    - Solve a beam described in a JSON document

Supports fixed, pinned, roller and free (cantilever) ends, point,
uniform, varying and moment loads, support settlements, and
per-span stiffness.`,
}

func init() {
	rootCmd.AddCommand(beamCmd)
}
