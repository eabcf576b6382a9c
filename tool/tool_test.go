package tool

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/store"
)

type harness struct {
	store  *store.Store
	tools  map[store.ToolID]Tool
	sel    *Select
	vertex *Vertex
}

func newHarness(t *testing.T, lvl *level.Level) *harness {
	t.Helper()
	return newHarnessWithClock(t, lvl, nil)
}

// newHarnessWithClock drives history coalescing from clock; nil means
// wall time.
func newHarnessWithClock(t *testing.T, lvl *level.Level, clock func() time.Time) *harness {
	t.Helper()
	s := store.New(lvl, store.Options{Clock: clock, Logger: log.New(io.Discard, "", 0)})
	h := &harness{store: s, tools: map[store.ToolID]Tool{}}
	for _, tl := range Defaults(s, DefaultConfig()) {
		s.RegisterTool(tl)
		h.tools[tl.ID()] = tl
	}
	h.sel = h.tools[SelectID].(*Select)
	h.vertex = h.tools[VertexID].(*Vertex)
	return h
}

func at(x, y float64) EventContext {
	p := geom.Vec{X: x, Y: y}
	return EventContext{
		World:   p,
		Screen:  p,
		Button:  input.ButtonPrimary,
		Buttons: input.HeldPrimary,
		Zoom:    1,
	}
}

func shift(ctx EventContext) EventContext {
	ctx.Mods |= input.ModShift
	return ctx
}

func key(k string, mods input.Modifiers) input.KeyEvent {
	return input.KeyEvent{Key: k, Mods: mods}
}

func triangleLevel() *level.Level {
	l := level.Empty()
	l.Start = level.Position{X: 500, Y: 500}
	l.AddPolygon([]level.Position{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}}, false)
	l.AddKiller(level.Position{X: 300, Y: 300})
	return l
}

func squareLevel() *level.Level {
	l := level.Empty()
	l.Start = level.Position{X: 500, Y: 500}
	l.AddPolygon([]level.Position{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}, false)
	l.AddPolygon([]level.Position{{X: 200, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 100}}, true)
	return l
}
