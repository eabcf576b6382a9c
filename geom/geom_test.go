package geom

import (
	"math"
	"testing"
)

// TestCase is a single point containment check.
type TestCase struct {
	Name         string
	Point        Vec
	ExpectInside bool
}

func runTestCases(t *testing.T, ring []Vec, testCases []TestCase) {
	t.Helper()
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := IsPointInPolygon(tc.Point, ring)
			if got != tc.ExpectInside {
				t.Errorf("IsPointInPolygon(%v) = %v, want %v", tc.Point, got, tc.ExpectInside)
			}
		})
	}
}

func square() []Vec {
	return []Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func TestIsClockwise(t *testing.T) {
	// On a Y-down screen this square walks right, down, left, up: clockwise.
	cw := square()
	if !IsClockwise(cw) {
		t.Fatal("square listed right/down/left/up should be clockwise")
	}
	if IsClockwise(Reversed(cw)) {
		t.Error("reversed square should be counter-clockwise")
	}

	tri := []Vec{{X: 0, Y: 0}, {X: 5, Y: 8}, {X: 10, Y: 1}}
	if IsClockwise(tri) == IsClockwise(Reversed(tri)) {
		t.Error("reversing a triangle must flip its winding")
	}
}

func TestIsClockwiseDegenerate(t *testing.T) {
	tests := []struct {
		name string
		ring []Vec
	}{
		{name: "empty", ring: nil},
		{name: "single vertex", ring: []Vec{{X: 1, Y: 1}}},
		{name: "two vertices", ring: []Vec{{X: 1, Y: 1}, {X: 3, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsClockwise(tt.ring) {
				t.Error("degenerate ring must not be clockwise")
			}
			if IsPointInPolygon(Vec{X: 1, Y: 1}, tt.ring) {
				t.Error("degenerate ring must not contain anything")
			}
		})
	}
}

func TestPointInSquare(t *testing.T) {
	runTestCases(t, square(), []TestCase{
		{Name: "center", Point: Vec{X: 5, Y: 5}, ExpectInside: true},
		{Name: "far right", Point: Vec{X: 20, Y: 5}, ExpectInside: false},
		{Name: "far left", Point: Vec{X: -20, Y: 5}, ExpectInside: false},
		{Name: "above", Point: Vec{X: 5, Y: -1}, ExpectInside: false},
		{Name: "below", Point: Vec{X: 5, Y: 11}, ExpectInside: false},
		{Name: "on top edge", Point: Vec{X: 5, Y: 0}, ExpectInside: true},
		{Name: "on bottom edge", Point: Vec{X: 3, Y: 10}, ExpectInside: true},
	})

	if !IsPointInPolygon(Centroid(square()), square()) {
		t.Errorf("centroid %v should be inside the square", Centroid(square()))
	}
}

func TestPointInConcave(t *testing.T) {
	//   0,0 ---- 4,0
	//    |        |
	//    |   2,2--4,2
	//    |    |
	//   0,4--2,4
	l := []Vec{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2},
		{X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	}
	runTestCases(t, l, []TestCase{
		{Name: "upper arm", Point: Vec{X: 3, Y: 1}, ExpectInside: true},
		{Name: "lower arm", Point: Vec{X: 1, Y: 3}, ExpectInside: true},
		{Name: "concave notch", Point: Vec{X: 3, Y: 3}, ExpectInside: false},
	})
}

func TestEdgeMidpoints(t *testing.T) {
	mids := EdgeMidpoints(square())
	want := []Vec{{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5}}
	if len(mids) != len(want) {
		t.Fatalf("got %d midpoints, want %d", len(mids), len(want))
	}
	for i := range want {
		if mids[i] != want[i] {
			t.Errorf("midpoint %d = %v, want %v", i, mids[i], want[i])
		}
	}
}

func TestRotated(t *testing.T) {
	got := Rotated([]Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, 2)
	want := []Vec{{X: 2}, {X: 3}, {X: 0}, {X: 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rotated = %v, want %v", got, want)
		}
	}
}

func TestSelfIntersects(t *testing.T) {
	bowtie := []Vec{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if !SelfIntersects(bowtie) {
		t.Error("bow tie should self-intersect")
	}
	if SelfIntersects(square()) {
		t.Error("square should not self-intersect")
	}
}

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name string
		p    Vec
		a, b Vec
		want float64
	}{
		{name: "perpendicular", p: Vec{X: 5, Y: 3}, a: Vec{X: 0, Y: 0}, b: Vec{X: 10, Y: 0}, want: 3},
		{name: "past end clamps", p: Vec{X: 13, Y: 4}, a: Vec{X: 0, Y: 0}, b: Vec{X: 10, Y: 0}, want: 5},
		{name: "zero-length segment", p: Vec{X: 3, Y: 4}, a: Vec{X: 0, Y: 0}, b: Vec{X: 0, Y: 0}, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, tt.a, tt.b)
			if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindVertexNearThresholdScaling(t *testing.T) {
	const threshold = 8.0
	distances := []float64{1, 2, 3.5, 4, 4.01, 6, 8, 8.5}
	for _, d := range distances {
		rings := [][]Vec{{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 150, Y: 200}}}

		// vertex d world units away, searched at zoom 2
		_, atZoom2 := FindVertexNear(Vec{X: 100 + d, Y: 100}, rings, threshold, 2)
		// vertex 2d world units away, searched at zoom 1
		_, atZoom1 := FindVertexNear(Vec{X: 100 + 2*d, Y: 100}, rings, threshold, 1)

		if atZoom2 != atZoom1 {
			t.Errorf("d=%v: zoom 2 hit=%v but zoom 1 at 2d hit=%v", d, atZoom2, atZoom1)
		}
	}
}

func TestFindVertexNearFirstMatchWins(t *testing.T) {
	rings := [][]Vec{
		{{X: 0, Y: 0}, {X: 3, Y: 0}},
		{{X: 1, Y: 0}},
	}
	hit, ok := FindVertexNear(Vec{X: 1, Y: 0}, rings, 5, 1)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Ring != 0 || hit.Vertex != 0 {
		t.Errorf("hit = %+v, want first vertex of first ring", hit)
	}
}

func TestFindVertexNearZeroZoom(t *testing.T) {
	if _, ok := FindVertexNear(Vec{}, [][]Vec{{{X: 0, Y: 0}}}, 10, 0); ok {
		t.Error("zero zoom must never hit")
	}
}

func TestFindEdgeNear(t *testing.T) {
	rings := [][]Vec{square()}
	hit, ok := FindEdgeNear(Vec{X: 10.5, Y: 4}, rings, 1, 1)
	if !ok {
		t.Fatal("expected edge hit")
	}
	if hit.Edge != 1 {
		t.Errorf("edge = %d, want 1 (right side)", hit.Edge)
	}
	if hit.Point != (Vec{X: 10, Y: 4}) {
		t.Errorf("point = %v, want (10, 4)", hit.Point)
	}

	if _, ok := FindEdgeNear(Vec{X: 5, Y: 5}, rings, 1, 1); ok {
		t.Error("center of the square is not near any edge")
	}
}

func TestRectContainsInclusive(t *testing.T) {
	r := RectFromCorners(Vec{X: 50, Y: 50}, Vec{X: 0, Y: 0})
	if !r.Contains(Vec{X: 50, Y: 50}) {
		t.Error("corner (50,50) must be inside")
	}
	if r.Contains(Vec{X: 50.01, Y: 50}) {
		t.Error("(50.01,50) must be outside")
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Bounds(nil); ok {
		t.Error("no rings should have no bounds")
	}
	r, ok := Bounds([][]Vec{square(), {{X: -5, Y: 20}}})
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{Min: Vec{X: -5, Y: 0}, Max: Vec{X: 10, Y: 20}}
	if r != want {
		t.Errorf("Bounds = %v, want %v", r, want)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	c := Camera{Offset: Vec{X: 30, Y: -12}, Zoom: 2.5}
	p := Vec{X: 7.25, Y: -3}
	back := c.ScreenToWorld(c.WorldToScreen(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestCameraZoomAtKeepsAnchor(t *testing.T) {
	c := Camera{Offset: Vec{X: 100, Y: 50}, Zoom: 1}
	anchor := Vec{X: 320, Y: 240}
	before := c.ScreenToWorld(anchor)

	z := c.ZoomAt(anchor, 4)
	after := z.ScreenToWorld(anchor)
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("world under cursor moved from %v to %v", before, after)
	}
}
