package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/bloodmagesoftware/motoed/project"
)

// loadProject returns the project root and configuration. Without a
// motoed.yaml the working directory and the defaults are used.
func loadProject() (string, *project.Config, error) {
	root, cfg, err := project.Load()
	if err != nil {
		return "", nil, fmt.Errorf("loading project: %w", err)
	}
	return root, cfg, nil
}

// levelArgs resolves level names given on the command line, or the levels
// directory when there are none.
func levelArgs(args []string) ([]string, error) {
	root, cfg, err := loadProject()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return []string{filepath.Join(root, cfg.LevelsDir)}, nil
	}
	return args, nil
}

// openLevel reads the level at path. A missing file yields a new default
// level named after the file; exists reports which case happened.
func openLevel(path string) (lvl *level.Level, exists bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		lvl = level.New()
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return lvl, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading level: %w", err)
	}
	log.Printf("loading level %s", path)
	lvl, err = levelio.Decode(data)
	if err != nil {
		return nil, true, fmt.Errorf("decoding level %s: %w", path, err)
	}
	return lvl, true, nil
}

// writeLevel writes data to path, creating its directory.
func writeLevel(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating level directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing level: %w", err)
	}
	return nil
}
