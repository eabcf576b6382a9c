package render

import (
	"testing"

	"github.com/bloodmagesoftware/motoed/geom"
)

func TestRecorderTransformStack(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Save()
	r.Translate(geom.Vec{X: 10, Y: 20})
	r.Scale(2)
	r.FillCircle(geom.Vec{}, 1, DefaultPalette.Apple)
	r.Restore()
	r.FillCircle(geom.Vec{}, 1, DefaultPalette.Apple)

	ops := r.Find("FillCircle")
	if len(ops) != 2 {
		t.Fatalf("got %d circles, want 2", len(ops))
	}
	if ops[0].Zoom != 2 || ops[0].Offset != (geom.Vec{X: 10, Y: 20}) || ops[0].Depth != 1 {
		t.Errorf("inside op transform = %v/%v depth %d", ops[0].Offset, ops[0].Zoom, ops[0].Depth)
	}
	if ops[1].Zoom != 1 || ops[1].Depth != 0 {
		t.Errorf("outside op transform = %v/%v depth %d", ops[1].Offset, ops[1].Zoom, ops[1].Depth)
	}
}

func TestRestoreWithoutSave(t *testing.T) {
	r := NewRecorder(10, 10)
	r.Restore()
	r.Clear(DefaultPalette.Sky)
	if r.Ops[0].Zoom != 1 {
		t.Error("unbalanced Restore corrupted the transform")
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(DefaultPalette.Apple, 0.5)
	if c.A < 127 || c.A > 128 {
		t.Errorf("alpha = %d, want about half", c.A)
	}
	if WithAlpha(DefaultPalette.Apple, 3).A != 255 {
		t.Error("alpha must clamp")
	}
}
