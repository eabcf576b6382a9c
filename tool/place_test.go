package tool

import (
	"testing"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
)

func TestPlaceTools(t *testing.T) {
	tests := []struct {
		id    string
		count func(l *level.Level) int
	}{
		{id: string(AppleID), count: func(l *level.Level) int { return len(l.Apples) }},
		{id: string(KillerID), count: func(l *level.Level) int { return len(l.Killers) }},
		{id: string(FlowerID), count: func(l *level.Level) int { return len(l.Flowers) }},
		{id: string(PictureID), count: func(l *level.Level) int { return len(l.Pictures) }},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			h := newHarness(t, level.Empty())
			tl := h.tools[SelectID]
			for id, candidate := range h.tools {
				if string(id) == tt.id {
					tl = candidate
				}
			}
			h.store.ActivateTool(tl.ID())
			if !tl.(PointerDowner).OnPointerDown(at(12, 34)) {
				t.Error("placement must consume the pointer")
			}
			if got := tt.count(h.store.Level()); got != 1 {
				t.Errorf("count = %d, want 1", got)
			}
		})
	}
}

func TestAppleSettings(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.store.ActivateTool(AppleID)
	apple := h.tools[AppleID].(*Place)

	apple.OnKeyDown(key("2", 0), at(0, 0))
	apple.OnKeyDown(key(input.KeyArrowLeft, input.ModAlt), at(0, 0))
	apple.OnPointerDown(at(5, 5))

	a := h.store.Level().Apples[0]
	if a.Animation != 2 || a.Gravity != level.GravityLeft {
		t.Errorf("apple = %+v, want animation 2 gravity left", a)
	}
	if a.Position != (level.Position{X: 5, Y: 5}) {
		t.Errorf("apple at %v", a.Position)
	}
}

func TestPictureCycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PictureNames = []string{"a", "b"}
	h := newHarness(t, level.Empty())
	pic := NewPicture(h.store, cfg)

	if got := pic.PictureSettings().Name; got != "a" {
		t.Fatalf("default picture = %q, want a", got)
	}
	pic.OnKeyDown(key("]", 0), at(0, 0))
	pic.OnPointerDown(at(1, 1))
	if got := h.store.Level().Pictures[0]; got.Name != "b" || got.Distance != level.DefaultPictureDistance {
		t.Errorf("picture = %+v", got)
	}
	pic.OnKeyDown(key("]", 0), at(0, 0))
	if got := pic.PictureSettings().Name; got != "a" {
		t.Errorf("cycle did not wrap: %q", got)
	}
}

func TestPlaceDraftOnlyWhenMouseInside(t *testing.T) {
	h := newHarness(t, level.Empty())
	killer := h.tools[KillerID].(*Place)
	rec := render.NewRecorder(100, 100)

	f := Frame{Camera: geom.DefaultCamera(), Palette: render.DefaultPalette, Sprites: render.NoSprites{}}
	killer.Render(rec, f)
	if len(rec.Ops) != 0 {
		t.Errorf("draft drawn with the mouse outside: %v", rec.Names())
	}

	f.MouseInside = true
	f.Mouse = geom.Vec{X: 3, Y: 4}
	killer.Render(rec, f)
	circles := rec.Find("FillCircle")
	if len(circles) != 1 || circles[0].Points[0] != f.Mouse {
		t.Fatalf("draft = %v", rec.Names())
	}
	if circles[0].Color.A == 255 {
		t.Error("draft should be translucent")
	}
}

func TestHandPansInScreenSpace(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.store.SetZoom(4)
	hand := h.tools[HandID].(*Hand)

	hand.OnPointerDown(at(10, 10))
	if hand.Cursor() != render.CursorGrabbing {
		t.Error("cursor should be grabbing while panning")
	}
	hand.OnPointerMove(at(30, 15))
	hand.OnPointerUp(at(30, 15))

	if got := h.store.Camera().Offset; got != (geom.Vec{X: 20, Y: 5}) {
		t.Errorf("offset = %v, want (20, 5)", got)
	}
	if hand.OnPointerMove(at(50, 50)) {
		t.Error("move after release must not pan")
	}
}
