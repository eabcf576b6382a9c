// Package tool implements the interchangeable editing tools. Every tool is
// constructed with the store it edits and implements only the capabilities
// it needs; the engine checks for each capability before calling it.
package tool

import (
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
)

// Tool ids. They are persisted in session files.
const (
	SelectID  store.ToolID = "select"
	VertexID  store.ToolID = "vertex"
	AppleID   store.ToolID = "apple"
	KillerID  store.ToolID = "killer"
	FlowerID  store.ToolID = "flower"
	PictureID store.ToolID = "picture"
	HandID    store.ToolID = "hand"
)

// Tool is implemented by every tool.
type Tool interface {
	store.Tool
	Name() string
	// Shortcut is the single lowercase letter that activates the tool.
	Shortcut() string
}

// EventContext is what a tool sees of an input event. World is already
// transformed through the camera.
type EventContext struct {
	World   geom.Vec
	Screen  geom.Vec
	Button  input.Button
	Buttons input.Buttons
	Mods    input.Modifiers
	Zoom    float64
}

// Frame carries per-frame rendering context.
type Frame struct {
	Camera      geom.Camera
	Mouse       geom.Vec
	MouseScreen geom.Vec
	MouseInside bool
	Sprites     render.Sprites
	ShowSprites bool
	Palette     render.Palette
	Now         time.Time
}

// Capabilities. A handler returns true when it consumed the event.
type (
	PointerDowner interface {
		OnPointerDown(ctx EventContext) bool
	}
	PointerMover interface {
		OnPointerMove(ctx EventContext) bool
	}
	PointerUpper interface {
		OnPointerUp(ctx EventContext) bool
	}
	KeyDowner interface {
		OnKeyDown(ev input.KeyEvent, ctx EventContext) bool
	}
	RightClicker interface {
		OnRightClick(ctx EventContext) bool
	}
	// Renderer draws in world space, inside the camera transform.
	Renderer interface {
		Render(c render.Canvas, f Frame)
	}
	// OverlayRenderer draws in screen space after the camera transform is
	// restored.
	OverlayRenderer interface {
		RenderOverlay(c render.Canvas, f Frame)
	}
	// Clearer drops in-progress gestures, for example before a level import.
	Clearer interface {
		Clear()
	}
	CursorProvider interface {
		Cursor() render.Cursor
	}
)

// Config holds hit-test radii in screen pixels and shared services.
type Config struct {
	VertexThresholdPx float64
	EdgeThresholdPx   float64
	ObjectThresholdPx float64
	CloseThresholdPx  float64
	// PictureNames is the list the picture tool cycles through.
	PictureNames []string
	Clipboard    Clipboard
}

// DefaultConfig returns the default radii and an in-memory clipboard.
func DefaultConfig() Config {
	return Config{
		VertexThresholdPx: 8,
		EdgeThresholdPx:   6,
		ObjectThresholdPx: 10,
		CloseThresholdPx:  10,
		PictureNames:      []string{"barrel", "bush1", "tree1", "sedge"},
		Clipboard:         &MemoryClipboard{},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.VertexThresholdPx <= 0 {
		c.VertexThresholdPx = d.VertexThresholdPx
	}
	if c.EdgeThresholdPx <= 0 {
		c.EdgeThresholdPx = d.EdgeThresholdPx
	}
	if c.ObjectThresholdPx <= 0 {
		c.ObjectThresholdPx = d.ObjectThresholdPx
	}
	if c.CloseThresholdPx <= 0 {
		c.CloseThresholdPx = d.CloseThresholdPx
	}
	if len(c.PictureNames) == 0 {
		c.PictureNames = d.PictureNames
	}
	if c.Clipboard == nil {
		c.Clipboard = d.Clipboard
	}
	return c
}

// Defaults builds the standard tool set, Select first.
func Defaults(s *store.Store, cfg Config) []Tool {
	cfg = cfg.withDefaults()
	return []Tool{
		NewSelect(s, cfg),
		NewVertex(s, cfg),
		NewApple(s),
		NewKiller(s),
		NewFlower(s),
		NewPicture(s, cfg),
		NewHand(s),
	}
}
