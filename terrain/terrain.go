// Package terrain decides which polygons are ground and which are sky holes,
// and orients their rings so a single non-zero fill renders the level.
package terrain

import (
	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
)

// IsTerrain reports whether p takes part in ground/sky classification.
func IsTerrain(p level.Polygon) bool {
	return !p.Grass && len(p.Vertices) >= 3
}

// ShouldBeGround classifies polys[i] by majority vote over its centroid and
// edge midpoints. A sample enclosed by an even number of other terrain
// polygons votes ground, an odd number votes sky. Ties favor ground.
func ShouldBeGround(polys []level.Polygon, i int) bool {
	target := polys[i].Vertices
	if len(target) < 3 {
		return true
	}

	samples := make([]geom.Vec, 0, len(target)+1)
	samples = append(samples, geom.Centroid(target))
	samples = append(samples, geom.EdgeMidpoints(target)...)

	ground, sky := 0, 0
	for _, s := range samples {
		depth := 0
		for j, other := range polys {
			if j == i || !IsTerrain(other) {
				continue
			}
			if geom.IsPointInPolygon(s, other.Vertices) {
				depth++
			}
		}
		if depth%2 == 0 {
			ground++
		} else {
			sky++
		}
	}
	return ground >= sky
}

// CorrectWinding returns polys[i] with its ring reversed when its winding
// disagrees with its role: ground winds clockwise, sky counter-clockwise.
// The returned polygon never shares a vertex slice with the input.
func CorrectWinding(polys []level.Polygon, i int) level.Polygon {
	p := polys[i]
	if geom.IsClockwise(p.Vertices) != ShouldBeGround(polys, i) {
		p.Vertices = geom.Reversed(p.Vertices)
	} else {
		p.Vertices = append([]geom.Vec(nil), p.Vertices...)
	}
	return p
}

// Correct applies CorrectWinding to every terrain polygon. Grass and
// degenerate polygons are left out.
func Correct(polys []level.Polygon) []level.Polygon {
	out := make([]level.Polygon, 0, len(polys))
	for i, p := range polys {
		if !IsTerrain(p) {
			continue
		}
		out = append(out, CorrectWinding(polys, i))
	}
	return out
}
