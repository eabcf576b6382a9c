package cmd

import (
	"fmt"
	"os"

	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/spf13/cobra"
)

var newForce bool

var newCmd = &cobra.Command{
	Use:   "new {level-name}",
	Short: "Create a new level",
	Long:  `Writes the default level (a rectangular boundary, the start and one flower) to a new level file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadProject()
		if err != nil {
			return err
		}
		path := cfg.LevelPath(root, args[0])
		if _, err := os.Stat(path); err == nil && !newForce {
			return fmt.Errorf("level %s already exists", path)
		}

		lvl := level.New()
		lvl.Name = args[0]
		data, err := levelio.Encode(lvl)
		if err != nil {
			return fmt.Errorf("encoding level: %w", err)
		}
		if err := writeLevel(path, data); err != nil {
			return err
		}
		fmt.Println("✅ Created", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing level")
}
