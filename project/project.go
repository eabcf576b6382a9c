package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "motoed.yaml"

// ErrNoProject is returned by FindProjectRoot when no motoed.yaml exists in
// the working directory or any of its parents.
var ErrNoProject = errors.New(ConfigFileName + " not found")

// Config represents the project configuration from motoed.yaml.
type Config struct {
	AssetsDir  string           `yaml:"assets_dir"`
	LevelsDir  string           `yaml:"levels_dir"`
	Editor     EditorConfig     `yaml:"editor"`
	Automation AutomationConfig `yaml:"automation"`
}

// EditorConfig tunes camera controls, hit testing and history.
type EditorConfig struct {
	MinZoom           float64       `yaml:"min_zoom"`
	MaxZoom           float64       `yaml:"max_zoom"`
	PanSpeed          float64       `yaml:"pan_speed"`
	ArrowPanStep      float64       `yaml:"arrow_pan_step"`
	ZoomStep          float64       `yaml:"zoom_step"`
	WheelZoomStep     float64       `yaml:"wheel_zoom_step"`
	VertexThresholdPx float64       `yaml:"vertex_threshold_px"`
	EdgeThresholdPx   float64       `yaml:"edge_threshold_px"`
	ObjectThresholdPx float64       `yaml:"object_threshold_px"`
	CloseThresholdPx  float64       `yaml:"close_threshold_px"`
	FitPadding        float64       `yaml:"fit_padding"`
	FitFraction       float64       `yaml:"fit_fraction"`
	HistoryThrottle   time.Duration `yaml:"history_throttle"`
	HistoryLimit      int           `yaml:"history_limit"`
	PictureNames      []string      `yaml:"picture_names,omitempty"`
}

type AutomationConfig struct {
	// Listen is the address of the HTTP automation server; empty disables it.
	Listen string `yaml:"listen"`
}

// DefaultConfig is used when there is no motoed.yaml and fills every field
// a motoed.yaml leaves out.
func DefaultConfig() Config {
	return Config{
		AssetsDir: "assets",
		LevelsDir: "levels",
		Editor: EditorConfig{
			MinZoom:           0.1,
			MaxZoom:           200,
			PanSpeed:          1,
			ArrowPanStep:      40,
			ZoomStep:          1.2,
			WheelZoomStep:     1.1,
			VertexThresholdPx: 8,
			EdgeThresholdPx:   6,
			ObjectThresholdPx: 10,
			CloseThresholdPx:  10,
			FitPadding:        2,
			FitFraction:       0.9,
			HistoryThrottle:   500 * time.Millisecond,
			HistoryLimit:      200,
		},
	}
}

// FindProjectRoot walks up from the current working directory looking for motoed.yaml.
// Returns the directory containing motoed.yaml, or ErrNoProject if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findRoot(cwd)
}

func findRoot(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in any parent directory of %s", ErrNoProject, start)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the motoed.yaml file from the given project root.
// Fields the file leaves out keep their defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return &config, nil
}

// Load finds the project root and its configuration. Without a motoed.yaml
// the working directory is the root and the defaults apply.
func Load() (root string, config *Config, err error) {
	root, err = FindProjectRoot()
	if errors.Is(err, ErrNoProject) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("getting current directory: %w", err)
		}
		c := DefaultConfig()
		return cwd, &c, nil
	}
	if err != nil {
		return "", nil, err
	}
	config, err = LoadConfig(root)
	if err != nil {
		return "", nil, err
	}
	return root, config, nil
}

// Validate rejects settings the editor cannot work with.
func (c *Config) Validate() error {
	e := c.Editor
	switch {
	case e.MinZoom <= 0:
		return fmt.Errorf("'editor.min_zoom' must be positive, got %v", e.MinZoom)
	case e.MaxZoom < e.MinZoom:
		return fmt.Errorf("'editor.max_zoom' (%v) is below 'editor.min_zoom' (%v)", e.MaxZoom, e.MinZoom)
	case e.FitFraction <= 0 || e.FitFraction > 1:
		return fmt.Errorf("'editor.fit_fraction' must be in (0, 1], got %v", e.FitFraction)
	case e.ZoomStep <= 1 || e.WheelZoomStep <= 1:
		return errors.New("'editor.zoom_step' and 'editor.wheel_zoom_step' must be greater than 1")
	case e.HistoryLimit < 0:
		return fmt.Errorf("'editor.history_limit' must not be negative, got %d", e.HistoryLimit)
	}
	return nil
}

// LevelPath resolves a level name or path. Bare names live in the levels
// directory and get the .lev extension.
func (c *Config) LevelPath(root, name string) string {
	if filepath.Ext(name) == "" {
		name += ".lev"
	}
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(root, c.LevelsDir, name)
}
