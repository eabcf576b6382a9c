package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info {level-name}",
	Short: "Print a summary of a level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadProject()
		if err != nil {
			return err
		}
		path := cfg.LevelPath(root, args[0])
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading level: %w", err)
		}
		lvl, err := levelio.Decode(data)
		if err != nil {
			return fmt.Errorf("decoding level %s: %w", path, err)
		}
		sum := levelio.Summarize(lvl)

		if infoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		fmt.Printf("Name:      %s\n", sum.Name)
		fmt.Printf("Polygons:  %d (%d grass, %d vertices)\n", sum.Polygons, sum.GrassPolygons, sum.Vertices)
		fmt.Printf("Apples:    %d\n", sum.Apples)
		fmt.Printf("Killers:   %d\n", sum.Killers)
		fmt.Printf("Flowers:   %d\n", sum.Flowers)
		fmt.Printf("Pictures:  %d\n", sum.Pictures)
		fmt.Printf("Start:     (%g, %g)\n", sum.Start.X, sum.Start.Y)
		fmt.Printf("Textures:  lgr %q, ground %q, sky %q\n", lvl.LGR, lvl.Ground, lvl.Sky)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the summary as JSON")
}
