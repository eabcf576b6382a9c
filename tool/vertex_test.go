package tool

import (
	"reflect"
	"testing"

	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/davecgh/go-spew/spew"
)

func TestDrawTriangleClosesOnFirstVertex(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.vertex.OnPointerDown(at(0, 0))
	h.vertex.OnPointerDown(at(100, 0))
	h.vertex.OnPointerDown(at(100, 100))
	if n := len(h.store.Level().Polygons); n != 0 {
		t.Fatalf("polygon committed early: %d", n)
	}
	h.vertex.OnPointerDown(at(2, 2))

	polys := h.store.Level().Polygons
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	want := []level.Position{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	if !reflect.DeepEqual(polys[0].Vertices, want) {
		t.Errorf("vertices = %v, want %v", polys[0].Vertices, want)
	}
	if h.vertex.State().Drawing {
		t.Error("tool still drawing after close")
	}
}

func TestCloseNeedsThreeVertices(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.vertex.OnPointerDown(at(0, 0))
	h.vertex.OnPointerDown(at(100, 0))
	h.vertex.OnPointerDown(at(1, 1))
	if got := len(h.vertex.State().Vertices); got != 3 {
		t.Errorf("click near the first vertex of a 2-vertex draft should append, have %d", got)
	}
}

func TestFinishOrCancel(t *testing.T) {
	tests := []struct {
		name      string
		clicks    int
		finish    func(h *harness)
		wantPolys int
	}{
		{name: "enter with 3", clicks: 3, finish: func(h *harness) { h.vertex.OnKeyDown(key(input.KeyEnter, 0), at(0, 0)) }, wantPolys: 1},
		{name: "enter with 2", clicks: 2, finish: func(h *harness) { h.vertex.OnKeyDown(key(input.KeyEnter, 0), at(0, 0)) }, wantPolys: 0},
		{name: "right click with 3", clicks: 3, finish: func(h *harness) { h.vertex.OnRightClick(at(0, 0)) }, wantPolys: 1},
		{name: "right click with 1", clicks: 1, finish: func(h *harness) { h.vertex.OnRightClick(at(0, 0)) }, wantPolys: 0},
		{name: "escape with 4", clicks: 4, finish: func(h *harness) { h.vertex.OnKeyDown(key(input.KeyEscape, 0), at(0, 0)) }, wantPolys: 0},
		{name: "tool switch with 3", clicks: 3, finish: func(h *harness) { h.store.ActivateTool(SelectID) }, wantPolys: 1},
		{name: "tool switch with 2", clicks: 2, finish: func(h *harness) { h.store.ActivateTool(SelectID) }, wantPolys: 0},
	}
	points := []struct{ x, y float64 }{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, level.Empty())
			h.store.ActivateTool(VertexID)
			for _, p := range points[:tt.clicks] {
				h.vertex.OnPointerDown(at(p.x, p.y))
			}
			tt.finish(h)
			if got := len(h.store.Level().Polygons); got != tt.wantPolys {
				t.Errorf("polygons = %d, want %d", got, tt.wantPolys)
			}
			if h.vertex.State().Drawing {
				t.Error("still drawing")
			}
		})
	}
}

func TestReopenThenEscapeRestores(t *testing.T) {
	tests := []struct {
		name  string
		click EventContext
	}{
		{name: "on vertex", click: at(100, 0)},
		{name: "on edge", click: at(50, 0)},
		{name: "on grass vertex", click: at(300, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, squareLevel())
			before := h.store.Level().Clone()

			h.vertex.OnPointerDown(tt.click)
			if !h.vertex.State().Drawing {
				t.Fatal("click did not re-open a polygon")
			}
			if n := len(h.store.Level().Polygons); n != 1 {
				t.Fatalf("re-opened polygon still in the list: %d polygons", n)
			}
			h.vertex.OnKeyDown(key(input.KeyEscape, 0), at(0, 0))

			if !reflect.DeepEqual(before.Polygons, h.store.Level().Polygons) {
				t.Errorf("polygons changed:\n%s\n%s", spew.Sdump(before.Polygons), spew.Sdump(h.store.Level().Polygons))
			}
		})
	}
}

func TestReopenOnEdgeInsertsVertex(t *testing.T) {
	h := newHarness(t, squareLevel())
	id := h.store.Level().Polygons[0].ID

	h.vertex.OnPointerDown(at(50, 0))
	st := h.vertex.State()
	if len(st.Vertices) != 5 || st.Vertices[0] != (level.Position{X: 50, Y: 0}) {
		t.Fatalf("draft = %v, want 5 vertices starting at the click", st.Vertices)
	}
	h.vertex.OnKeyDown(key(input.KeyEnter, 0), at(0, 0))

	polys := h.store.Level().Polygons
	if polys[0].ID != id || len(polys[0].Vertices) != 5 {
		t.Errorf("polygon 0 = %+v, want id %d with 5 vertices at its old index", polys[0], id)
	}
	if polys[1].Grass != true {
		t.Error("grass polygon lost its position in the list")
	}
}

func TestReopenOnVertexRotates(t *testing.T) {
	h := newHarness(t, squareLevel())
	h.vertex.OnPointerDown(at(100, 100))
	want := []level.Position{{X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0}, {X: 100, Y: 0}}
	if got := h.vertex.State().Vertices; !reflect.DeepEqual(got, want) {
		t.Errorf("draft = %v, want %v", got, want)
	}
}

func TestSpaceReverses(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.vertex.OnPointerDown(at(0, 0))
	h.vertex.OnPointerDown(at(100, 0))
	h.vertex.OnPointerDown(at(100, 100))
	h.vertex.OnKeyDown(key(input.KeySpace, 0), at(0, 0))
	want := []level.Position{{X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 0}}
	if got := h.vertex.State().Vertices; !reflect.DeepEqual(got, want) {
		t.Errorf("draft = %v, want %v", got, want)
	}
}

func TestGrassVariant(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.vertex.OnKeyDown(key("G", 0), at(0, 0))
	h.vertex.OnPointerDown(at(0, 0))
	h.vertex.OnPointerDown(at(100, 0))
	h.vertex.OnPointerDown(at(100, 100))
	h.vertex.OnRightClick(at(0, 0))

	polys := h.store.Level().Polygons
	if len(polys) != 1 || !polys[0].Grass {
		t.Fatalf("polygons = %+v, want one grass polygon", polys)
	}
	if !h.vertex.State().Grass {
		t.Error("variant was reset after finishing")
	}
}

func TestBackspaceRemovesLastVertex(t *testing.T) {
	h := newHarness(t, level.Empty())
	h.vertex.OnPointerDown(at(0, 0))
	h.vertex.OnPointerDown(at(100, 0))
	h.vertex.OnKeyDown(key(input.KeyBackspace, 0), at(0, 0))
	if got := len(h.vertex.State().Vertices); got != 1 {
		t.Errorf("draft has %d vertices, want 1", got)
	}
	h.vertex.OnKeyDown(key(input.KeyBackspace, 0), at(0, 0))
	if h.vertex.State().Drawing {
		t.Error("removing the only vertex should end the drawing")
	}
}
