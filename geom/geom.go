// Package geom holds the pure 2D math used by the editor: vectors, rectangles,
// winding and containment tests, proximity searches and the camera transform.
//
// World space has X growing to the right and Y growing down, the same as the
// screen. Every function tolerates degenerate input (empty rings, zero-length
// edges, zero zoom) and reports "no hit" instead of producing NaN.
package geom

import "math"

// Epsilon merges values that differ only by rounding error.
const Epsilon = 1e-9

// Vec is a 2D point or vector.
type Vec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Pt is shorthand for Vec{X: x, Y: y}.
func Pt(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales v by s.
func (v Vec) Mul(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of two vectors.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// IsFinite reports whether both components are real numbers.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle. Min is the top-left corner.
type Rect struct {
	Min Vec `yaml:"min" json:"min"`
	Max Vec `yaml:"max" json:"max"`
}

// RectFromCorners builds a normalized rectangle from two arbitrary corners,
// e.g. the start and the live end of a marquee drag.
func RectFromCorners(a, b Vec) Rect {
	return Rect{
		Min: Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r. The boundary is inclusive.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{
		Min: Vec{X: r.Min.X - m, Y: r.Min.Y - m},
		Max: Vec{X: r.Max.X + m, Y: r.Max.Y + m},
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vec{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Vec{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Bounds returns the bounding box of all points in all rings.
// ok is false when there is no point at all.
func Bounds(rings [][]Vec) (r Rect, ok bool) {
	for _, ring := range rings {
		for _, p := range ring {
			if !ok {
				r = Rect{Min: p, Max: p}
				ok = true
				continue
			}
			r.Min.X = math.Min(r.Min.X, p.X)
			r.Min.Y = math.Min(r.Min.Y, p.Y)
			r.Max.X = math.Max(r.Max.X, p.X)
			r.Max.Y = math.Max(r.Max.Y, p.Y)
		}
	}
	return r, ok
}
