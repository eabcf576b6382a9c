package geom

import "math"

// IsClockwise reports whether the ring winds clockwise on a Y-down screen.
// It uses the shoelace sum Σ(x[i+1]-x[i])·(y[i+1]+y[i]); a positive sum is
// clockwise. Rings with fewer than 3 vertices are never clockwise.
func IsClockwise(vs []Vec) bool {
	n := len(vs)
	if n < 3 {
		return false
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := vs[i]
		b := vs[(i+1)%n]
		sum += (b.X - a.X) * (b.Y + a.Y)
	}
	return sum > 0
}

// SignedArea returns the shoelace area, positive for clockwise rings.
func SignedArea(vs []Vec) float64 {
	n := len(vs)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := vs[i]
		b := vs[(i+1)%n]
		sum += (b.X - a.X) * (b.Y + a.Y)
	}
	return sum / 2
}

// IsPointInPolygon casts a horizontal ray from p and counts edge crossings
// (even-odd rule). A point lying on a horizontal edge counts as inside.
// Rings with fewer than 3 vertices never contain anything.
func IsPointInPolygon(p Vec, vs []Vec) bool {
	n := len(vs)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := vs[i]
		b := vs[j]

		if a.Y == b.Y {
			// horizontal edge: no crossing, only a boundary hit
			if p.Y == a.Y && p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) {
				return true
			}
			continue
		}

		if (a.Y > p.Y) != (b.Y > p.Y) {
			cross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < cross {
				inside = !inside
			}
		}
	}
	return inside
}

// Centroid returns the vertex average of the ring.
func Centroid(vs []Vec) Vec {
	if len(vs) == 0 {
		return Vec{}
	}
	var c Vec
	for _, v := range vs {
		c.X += v.X
		c.Y += v.Y
	}
	n := float64(len(vs))
	return Vec{X: c.X / n, Y: c.Y / n}
}

// EdgeMidpoints returns the midpoint of every edge including the implicit
// closing edge from the last vertex back to the first.
func EdgeMidpoints(vs []Vec) []Vec {
	n := len(vs)
	if n < 2 {
		return nil
	}
	mids := make([]Vec, 0, n)
	for i := 0; i < n; i++ {
		a := vs[i]
		b := vs[(i+1)%n]
		mids = append(mids, Vec{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
	}
	return mids
}

// Reversed returns a reversed copy of the ring.
func Reversed(vs []Vec) []Vec {
	out := make([]Vec, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}

// Rotated returns a copy of the ring starting at index start.
func Rotated(vs []Vec, start int) []Vec {
	n := len(vs)
	out := make([]Vec, 0, n)
	if n == 0 {
		return out
	}
	start = ((start % n) + n) % n
	out = append(out, vs[start:]...)
	out = append(out, vs[:start]...)
	return out
}

// SelfIntersects reports whether two non-adjacent edges of the ring cross.
// Self-intersecting rings are unsupported input for ground classification;
// this only detects them.
func SelfIntersects(vs []Vec) bool {
	n := len(vs)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := vs[i]
		a2 := vs[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// adjacent edges share a vertex
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1 := vs[j]
			b2 := vs[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func segmentsCross(a1, a2, b1, b2 Vec) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	return ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon))
}
