package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motoed",
	Short: "motoed - Level editor for the motorcycle physics game",
	Long: `motoed edits, checks and formats level files of the motorcycle physics game.
It opens levels in a visual editor, runs automation scripts against them,
serves an HTTP automation API and lints or formats whole level directories.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
