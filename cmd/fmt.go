package cmd

import (
	"github.com/bloodmagesoftware/motoed/formatter"
	"github.com/spf13/cobra"
)

var (
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format level files",
	Long: `Rewrites level files in canonical form: polygon winding matches the ground or
sky role, degenerate polygons are dropped and integer coordinates are nudged.
Without arguments the project's levels directory is formatted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := levelArgs(args)
		if err != nil {
			return err
		}
		return formatter.Format(paths, fmtCheck)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
