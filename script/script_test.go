package script

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/davecgh/go-spew/spew"
)

func newEngine() *engine.Engine {
	logger := log.New(io.Discard, "", 0)
	return engine.New(store.New(level.New(), store.Options{Logger: logger}), engine.Options{Logger: logger})
}

func TestRunBuildsLevel(t *testing.T) {
	e := newEngine()
	src := `
set_name("ramp")
add_polygon([[0, 0], [40, 0], [40, 10]])
add_polygon([{x: 5, y: 5}, {x: 6, y: 5}, {x: 6, y: 6}], true)
for i := 0; i < 3; i++ {
	add_apple(i * 2, 1)
}
add_apple(1, 1, 2, "up")
add_killer(3.5, 4)
add_flower(9, 9)
move_start(1, 2)
fit_to_view()
count := polygon_count()
name := level_name()
`
	if err := Run(context.Background(), e, []byte(src)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	l := e.Store().Level()
	if l.Name != "ramp" {
		t.Errorf("name = %q", l.Name)
	}
	if len(l.Polygons) != 3 || !l.Polygons[2].Grass {
		t.Errorf("polygons = %s", spew.Sdump(l.Polygons))
	}
	if len(l.Apples) != 4 {
		t.Fatalf("apples = %d, want 4", len(l.Apples))
	}
	if a := l.Apples[3]; a.Animation != 2 || a.Gravity != level.GravityUp {
		t.Errorf("last apple = %+v", a)
	}
	if len(l.Killers) != 1 || l.Killers[0].Position != (level.Position{X: 3.5, Y: 4}) {
		t.Errorf("killers = %+v", l.Killers)
	}
	if len(l.Flowers) != 2 {
		t.Errorf("flowers = %d, want 2", len(l.Flowers))
	}
	if l.Start != (level.Position{X: 1, Y: 2}) {
		t.Errorf("start = %v", l.Start)
	}
}

func TestRunIsOneUndoStep(t *testing.T) {
	e := newEngine()
	if err := Run(context.Background(), e, []byte(`add_killer(1, 1); add_killer(2, 2)`)); err != nil {
		t.Fatal(err)
	}
	if !e.Undo() {
		t.Fatal("nothing to undo")
	}
	if n := len(e.Store().Level().Killers); n != 0 {
		t.Errorf("killers after one undo = %d, want 0", n)
	}
}

func TestRunDoesNotMergeWithPriorEdit(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	logger := log.New(io.Discard, "", 0)
	s := store.New(level.New(), store.Options{Clock: func() time.Time { return now }, Logger: logger})
	e := engine.New(s, engine.Options{Logger: logger})

	s.SetLevelName("manual")
	if err := Run(context.Background(), e, []byte(`add_killer(1, 1)`)); err != nil {
		t.Fatal(err)
	}
	if !e.Undo() {
		t.Fatal("nothing to undo")
	}
	l := e.Store().Level()
	if len(l.Killers) != 0 || l.Name != "manual" {
		t.Errorf("after one undo name = %q, killers = %d; want %q, 0", l.Name, len(l.Killers), "manual")
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: `add_killer(`, want: "compiling script"},
		{name: "argument count", src: `add_killer(1)`, want: "wrong number of arguments"},
		{name: "argument type", src: `add_flower("a", 1)`, want: "invalid type"},
		{name: "short polygon", src: `add_polygon([[0, 0], [1, 1]])`, want: "running script"},
		{name: "bad point", src: `add_polygon([[0, 0], [1], [2, 2]])`, want: "point 1"},
		{name: "gravity", src: `add_apple(0, 0, 1, "sideways")`, want: "unknown gravity"},
		{name: "os is not importable", src: `os := import("os")`, want: "compiling script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), newEngine(), []byte(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, newEngine(), []byte(`for { }`)); err == nil {
		t.Error("cancelled script did not stop")
	}
}
