package cmd

import (
	"github.com/bloodmagesoftware/motoed/linter"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check level files for problems",
	Long: `Checks level files for missing terrain, degenerate or self-intersecting
polygons, a start outside the playable area, a missing flower and objects
outside the terrain. Without arguments the project's levels directory is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := levelArgs(args)
		if err != nil {
			return err
		}
		return linter.Lint(paths...)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
