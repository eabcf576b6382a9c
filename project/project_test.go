package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/davecgh/go-spew/spew"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRootWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "levels_dir: lev\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := findRoot(nested)
	if err != nil {
		t.Fatalf("findRoot: %v", err)
	}
	if got != root {
		t.Errorf("findRoot = %q, want %q", got, root)
	}
}

func TestFindRootMissing(t *testing.T) {
	_, err := findRoot(t.TempDir())
	if !errors.Is(err, ErrNoProject) {
		t.Errorf("err = %v, want ErrNoProject", err)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
levels_dir: lev
editor:
  max_zoom: 50
  history_throttle: 1s
automation:
  listen: 127.0.0.1:7070
`)
	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.LevelsDir = "lev"
	want.Editor.MaxZoom = 50
	want.Editor.HistoryThrottle = time.Second
	want.Automation.Listen = "127.0.0.1:7070"
	if !reflect.DeepEqual(*cfg, want) {
		t.Errorf("config mismatch:\n got %s\nwant %s", spew.Sdump(*cfg), spew.Sdump(want))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "editor: [1, 2"},
		{name: "zero min zoom", content: "editor:\n  min_zoom: 0\n"},
		{name: "max below min", content: "editor:\n  min_zoom: 5\n  max_zoom: 1\n"},
		{name: "fit fraction", content: "editor:\n  fit_fraction: 1.5\n"},
		{name: "zoom step", content: "editor:\n  zoom_step: 1\n"},
		{name: "history limit", content: "editor:\n  history_limit: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)
			if _, err := LoadConfig(root); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLevelPath(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare name", in: "hill", want: filepath.Join("/p", "levels", "hill.lev")},
		{name: "with extension", in: "hill.lev", want: filepath.Join("/p", "levels", "hill.lev")},
		{name: "relative path", in: filepath.Join("x", "hill.lev"), want: filepath.Join("x", "hill.lev")},
		{name: "absolute path", in: "/tmp/hill", want: "/tmp/hill.lev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.LevelPath("/p", tt.in); got != tt.want {
				t.Errorf("LevelPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEditorConversions(t *testing.T) {
	e := DefaultConfig().Editor
	e.PictureNames = []string{"tree1"}

	so := e.StoreOptions(nil)
	if so.MaxZoom != e.MaxZoom || so.HistoryLimit != e.HistoryLimit {
		t.Errorf("store options = %+v", so)
	}
	tc := e.ToolConfig(nil)
	if tc.Clipboard == nil {
		t.Error("tool config without clipboard")
	}
	if !reflect.DeepEqual(tc.PictureNames, []string{"tree1"}) {
		t.Errorf("picture names = %v", tc.PictureNames)
	}
	eo := e.EngineOptions(nil, nil)
	if eo.FitFraction != e.FitFraction || eo.Tools.VertexThresholdPx != e.VertexThresholdPx {
		t.Errorf("engine options = %+v", eo)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "hill.lev")
	if err := os.WriteFile(levelPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(levelPath, old, old); err != nil {
		t.Fatal(err)
	}

	s := store.New(level.New(), store.Options{})
	s.SetLevelName("unsaved")
	s.SetCamera(geom.Camera{Offset: geom.Vec{X: 10, Y: 20}, Zoom: 3})
	s.ToggleDebug()
	if err := SaveSession(levelPath, s); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	st, ok, err := LoadSession(levelPath)
	if err != nil || !ok {
		t.Fatalf("LoadSession = %v, %v", ok, err)
	}
	if st.Level == nil || st.Level.Name != "unsaved" {
		t.Errorf("session level = %s", spew.Sdump(st.Level))
	}
	if st.Camera.Zoom != 3 || st.Camera.Offset != (geom.Vec{X: 10, Y: 20}) {
		t.Errorf("camera = %+v", st.Camera)
	}
	if !st.Flags.Debug {
		t.Error("debug flag lost")
	}
}

func TestSessionOlderThanLevelDropsLevel(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "hill.lev")
	s := store.New(level.New(), store.Options{})
	if err := SaveSession(levelPath, s); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(SessionPath(levelPath), old, old); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(levelPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, ok, err := LoadSession(levelPath)
	if err != nil || !ok {
		t.Fatalf("LoadSession = %v, %v", ok, err)
	}
	if st.Level != nil {
		t.Error("stale session level was kept")
	}
}

func TestLoadSessionMissing(t *testing.T) {
	_, ok, err := LoadSession(filepath.Join(t.TempDir(), "none.lev"))
	if err != nil || ok {
		t.Errorf("LoadSession = %v, %v; want no session and no error", ok, err)
	}
}
