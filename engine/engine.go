// Package engine drives an editing session: it owns the tool set, turns
// input events into tool calls and camera moves, renders every frame and
// exposes the operations automation clients use.
//
// An Engine and its store belong to one goroutine. Other goroutines talk to
// it through Post and Do, which queue work for the owner to run at the start
// of the next frame (or inside Serve when there is no window).
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/bloodmagesoftware/motoed/terrain"
	"github.com/bloodmagesoftware/motoed/tool"
)

// Options tune camera controls and rendering. Zero values use the defaults.
type Options struct {
	// PanSpeed divides the middle-button drag delta.
	PanSpeed float64
	// ArrowPanStep is the screen distance one arrow key press pans.
	ArrowPanStep float64
	// ZoomStep is the factor applied by the + and - keys.
	ZoomStep float64
	// WheelZoomStep is the factor applied per 100 units of wheel delta.
	WheelZoomStep float64
	// FitPadding is the world-space margin around the fitted polygons.
	FitPadding float64
	// FitFraction is the part of the canvas the fitted polygons may fill.
	FitFraction float64
	// Viewport is the canvas size assumed before the first frame.
	Viewport geom.Vec

	Tools   tool.Config
	Sprites render.Sprites
	Palette *render.Palette
	Logger  *log.Logger
	// Wake is called after Post queues a command, so a frontend can schedule
	// a frame.
	Wake func()
}

func (o Options) withDefaults() Options {
	if o.PanSpeed <= 0 {
		o.PanSpeed = 1
	}
	if o.ArrowPanStep <= 0 {
		o.ArrowPanStep = 40
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = 1.2
	}
	if o.WheelZoomStep <= 1 {
		o.WheelZoomStep = 1.1
	}
	if o.FitPadding < 0 {
		o.FitPadding = 0
	} else if o.FitPadding == 0 {
		o.FitPadding = 2
	}
	if o.FitFraction <= 0 || o.FitFraction > 1 {
		o.FitFraction = 0.9
	}
	if o.Viewport.X <= 0 || o.Viewport.Y <= 0 {
		o.Viewport = geom.Vec{X: 1280, Y: 720}
	}
	if o.Sprites == nil {
		o.Sprites = render.NoSprites{}
	}
	if o.Palette == nil {
		p := render.DefaultPalette
		o.Palette = &p
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

type Engine struct {
	store *store.Store
	opts  Options
	log   *log.Logger
	tools []tool.Tool

	terrain terrain.Cache
	size    geom.Vec

	mouse       geom.Vec
	mouseScreen geom.Vec
	mouseInside bool
	buttons     input.Buttons

	panning bool
	panLast geom.Vec

	mu    sync.Mutex
	queue []Command
	wake  chan struct{}
}

// New creates an engine for s and registers the default tool set with
// Select active.
func New(s *store.Store, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		store: s,
		opts:  opts,
		log:   opts.Logger,
		size:  opts.Viewport,
		wake:  make(chan struct{}, 1),
	}
	for _, t := range tool.Defaults(s, opts.Tools) {
		e.tools = append(e.tools, t)
		s.RegisterTool(t)
	}
	return e
}

func (e *Engine) Store() *store.Store {
	return e.store
}

// Tools returns the registered tools in registration order.
func (e *Engine) Tools() []tool.Tool {
	return append([]tool.Tool(nil), e.tools...)
}

// Tool returns the registered tool with the given id.
func (e *Engine) Tool(id store.ToolID) (tool.Tool, bool) {
	for _, t := range e.tools {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// ActiveTool returns the active tool.
func (e *Engine) ActiveTool() tool.Tool {
	t, _ := e.Tool(e.store.ActiveToolID())
	return t
}

// SetSprites swaps the sprite source, for example once assets are loading.
func (e *Engine) SetSprites(s render.Sprites) {
	if s == nil {
		s = render.NoSprites{}
	}
	e.opts.Sprites = s
}

// Mouse returns the last world and screen cursor positions the engine saw.
func (e *Engine) Mouse() (world, screen geom.Vec, inside bool) {
	return e.mouse, e.mouseScreen, e.mouseInside
}

// Panning reports whether a middle-button pan is in progress.
func (e *Engine) Panning() bool {
	return e.panning
}

func (e *Engine) frame(now time.Time) tool.Frame {
	return tool.Frame{
		Camera:      e.store.Camera(),
		Mouse:       e.mouse,
		MouseScreen: e.mouseScreen,
		MouseInside: e.mouseInside,
		Sprites:     e.opts.Sprites,
		ShowSprites: e.store.Flags().ShowSprites,
		Palette:     *e.opts.Palette,
		Now:         now,
	}
}
