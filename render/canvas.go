// Package render is the drawing surface the engine and tools paint on.
// The Gio backend lives in gioview; Recorder captures calls for tests.
package render

import (
	"image"
	"image/color"

	"github.com/bloodmagesoftware/motoed/geom"
)

// Cursor is the pointer shape requested for the canvas.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorCrosshair
	CursorPointer
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorCrosshair:
		return "crosshair"
	case CursorPointer:
		return "pointer"
	}
	return "unknown"
}

// Stroke describes a line style. Width is in the units of the current
// transform; Dash alternates on/off lengths in the same units.
type Stroke struct {
	Width float64
	Color color.NRGBA
	Dash  []float64
}

// Canvas is a 2D drawing surface with a transform stack. Coordinates pass
// through the current transform: translate first, then scale.
type Canvas interface {
	// Size returns the canvas size in screen pixels.
	Size() geom.Vec
	Clear(c color.NRGBA)

	Save()
	Restore()
	Translate(d geom.Vec)
	Scale(s float64)

	// FillPath fills all rings as one path with the non-zero winding rule.
	FillPath(rings [][]geom.Vec, c color.NRGBA)
	StrokePolyline(pts []geom.Vec, closed bool, s Stroke)
	FillCircle(center geom.Vec, radius float64, c color.NRGBA)
	StrokeCircle(center geom.Vec, radius float64, s Stroke)
	FillRect(r geom.Rect, c color.NRGBA)
	StrokeRect(r geom.Rect, s Stroke)
	// DrawImage draws img centered at center, scaled to w×h, with the given
	// opacity in [0, 1].
	DrawImage(img image.Image, center geom.Vec, w, h, alpha float64)
	// Text draws a single line with its top-left corner at pos.
	Text(pos geom.Vec, s string, c color.NRGBA)

	SetCursor(c Cursor)
}

// Sprites looks up decoded sprites by name. Lookups never block; a sprite
// that is not loaded yet reports false.
type Sprites interface {
	Sprite(name string) (image.Image, bool)
}

// NoSprites is a Sprites that never has anything.
type NoSprites struct{}

func (NoSprites) Sprite(string) (image.Image, bool) { return nil, false }

// WithAlpha returns c with its alpha scaled by a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(geom.Clamp(float64(c.A)*a, 0, 255))
	return c
}
