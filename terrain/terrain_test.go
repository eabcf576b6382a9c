package terrain

import (
	"testing"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
)

func rect(x0, y0, x1, y1 float64) []level.Position {
	return []level.Position{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestLonePolygonIsGround(t *testing.T) {
	polys := []level.Polygon{{Vertices: rect(0, 0, 10, 10)}}
	if !ShouldBeGround(polys, 0) {
		t.Error("a lone top-level polygon must be ground")
	}
}

func TestHoleRoundTrip(t *testing.T) {
	tests := []struct {
		name             string
		outerCW, innerCW bool
	}{
		{name: "both clockwise", outerCW: true, innerCW: true},
		{name: "both counter-clockwise", outerCW: false, innerCW: false},
		{name: "outer clockwise", outerCW: true, innerCW: false},
		{name: "inner clockwise", outerCW: false, innerCW: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outer := rect(0, 0, 100, 100)
			inner := rect(40, 40, 60, 60)
			if !tt.outerCW {
				outer = geom.Reversed(outer)
			}
			if !tt.innerCW {
				inner = geom.Reversed(inner)
			}
			polys := []level.Polygon{{Vertices: outer}, {Vertices: inner}}

			if !ShouldBeGround(polys, 0) {
				t.Error("outer should be ground")
			}
			if ShouldBeGround(polys, 1) {
				t.Error("inner should be sky")
			}

			a := CorrectWinding(polys, 0)
			b := CorrectWinding(polys, 1)
			if geom.IsClockwise(a.Vertices) == geom.IsClockwise(b.Vertices) {
				t.Error("outer and hole must wind in opposite directions")
			}
			if !geom.IsClockwise(a.Vertices) {
				t.Error("ground must wind clockwise")
			}
		})
	}
}

func TestIslandInsideHole(t *testing.T) {
	polys := []level.Polygon{
		{Vertices: rect(0, 0, 100, 100)},
		{Vertices: rect(20, 20, 80, 80)},
		{Vertices: rect(40, 40, 60, 60)},
	}
	want := []bool{true, false, true}
	for i, w := range want {
		if got := ShouldBeGround(polys, i); got != w {
			t.Errorf("polygon %d ground = %v, want %v", i, got, w)
		}
	}
}

func TestGrassIgnored(t *testing.T) {
	polys := []level.Polygon{
		{Vertices: rect(0, 0, 100, 100), Grass: true},
		{Vertices: rect(40, 40, 60, 60)},
	}
	if !ShouldBeGround(polys, 1) {
		t.Error("a grass ring must not turn its contents into sky")
	}
	if got := Correct(polys); len(got) != 1 {
		t.Errorf("Correct kept %d polygons, want only the terrain one", len(got))
	}
}

func TestCorrectWindingDoesNotAlias(t *testing.T) {
	polys := []level.Polygon{{Vertices: rect(0, 0, 10, 10)}}
	c := CorrectWinding(polys, 0)
	c.Vertices[0].X = 42
	if polys[0].Vertices[0].X == 42 {
		t.Error("corrected polygon shares its vertex slice with the input")
	}
}

func TestCacheRecomputesOnVersionChange(t *testing.T) {
	polys := []level.Polygon{{Vertices: rect(0, 0, 10, 10)}}
	var c Cache

	c.Rings(1, polys)
	c.Rings(1, polys)
	c.Rings(1, polys)
	if hits, misses := c.Stats(); hits != 2 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2/1", hits, misses)
	}

	polys = append(polys, level.Polygon{Vertices: rect(2, 2, 4, 4)})
	rings := c.Rings(2, polys)
	if len(rings) != 2 {
		t.Errorf("got %d rings after version bump, want 2", len(rings))
	}
	if _, misses := c.Stats(); misses != 2 {
		t.Errorf("misses = %d, want 2", misses)
	}
}
