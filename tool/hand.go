package tool

import (
	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
)

// Hand pans the camera by the raw screen delta of a drag, so panning feels
// the same at every zoom. The gesture lives on the tool rather than in the
// store; it is never worth undoing.
type Hand struct {
	store    *store.Store
	dragging bool
	last     geom.Vec
}

func NewHand(s *store.Store) *Hand {
	return &Hand{store: s}
}

func (t *Hand) ID() store.ToolID { return HandID }
func (t *Hand) Name() string     { return "Hand" }
func (t *Hand) Shortcut() string { return "h" }

func (t *Hand) Cursor() render.Cursor {
	if t.dragging {
		return render.CursorGrabbing
	}
	return render.CursorGrab
}

func (t *Hand) OnPointerDown(ctx EventContext) bool {
	if ctx.Button != input.ButtonPrimary {
		return false
	}
	t.dragging = true
	t.last = ctx.Screen
	return true
}

func (t *Hand) OnPointerMove(ctx EventContext) bool {
	if !t.dragging {
		return false
	}
	delta := ctx.Screen.Sub(t.last)
	t.last = ctx.Screen
	t.store.SetCamera(t.store.Camera().Pan(delta))
	return true
}

func (t *Hand) OnPointerUp(EventContext) bool {
	if !t.dragging {
		return false
	}
	t.dragging = false
	return true
}

func (t *Hand) OnDeactivate(*store.Store) {
	t.Clear()
}

func (t *Hand) Clear() {
	t.dragging = false
	t.last = geom.Vec{}
}
