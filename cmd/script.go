package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/script"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/spf13/cobra"
)

var (
	scriptDryRun bool
	scriptOut    string
)

var scriptCmd = &cobra.Command{
	Use:   "script {level-name} {script.tengo}",
	Short: "Run an automation script against a level",
	Long: `Opens the level without a window, runs the tengo script against it and
writes the result back (or to --out). A missing level starts from the default level.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadProject()
		if err != nil {
			return err
		}
		path := cfg.LevelPath(root, args[0])
		lvl, _, err := openLevel(path)
		if err != nil {
			return err
		}

		logger := log.Default()
		s := store.New(lvl, cfg.Editor.StoreOptions(logger))
		e := engine.New(s, cfg.Editor.EngineOptions(nil, logger))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := script.RunFile(ctx, e, args[1]); err != nil {
			return err
		}

		sum := e.Summary()
		fmt.Printf("Script done: %d polygons, %d apples, %d killers, %d flowers\n",
			sum.Polygons, sum.Apples, sum.Killers, sum.Flowers)
		if scriptDryRun {
			return nil
		}

		data, err := e.Export()
		if err != nil {
			return err
		}
		out := path
		if scriptOut != "" {
			out = scriptOut
		}
		if err := writeLevel(out, data); err != nil {
			return err
		}
		fmt.Println("✅ Wrote", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().BoolVar(&scriptDryRun, "dry-run", false, "Run the script without writing the level")
	scriptCmd.Flags().StringVarP(&scriptOut, "out", "o", "", "Write the level to this file instead")
}
