package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsiegemit/MorphoStruct-sub001/version"
)

var rootCmd = &cobra.Command{
	Use:   "morphotile",
	Short: "Tile a unit patch across curved target surfaces",
	Long: `morphotile replicates a small repeatable 3D patch across an analytic
target surface (sphere, ellipsoid, torus, cylinder, superellipsoid),
producing a thin conforming shell or a solid fill of concentric layers.`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
