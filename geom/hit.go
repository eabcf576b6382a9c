package geom

// VertexHit identifies a vertex found by FindVertexNear.
type VertexHit struct {
	Ring   int
	Vertex int
}

// EdgeHit identifies an edge found by FindEdgeNear. The edge runs from
// vertex Edge to vertex (Edge+1) mod n; Point is the closest point on it.
type EdgeHit struct {
	Ring  int
	Edge  int
	Point Vec
}

// worldThreshold converts a screen-space radius into world units.
// ok is false for a non-positive zoom.
func worldThreshold(thresholdPx, zoom float64) (float64, bool) {
	if zoom <= 0 || thresholdPx < 0 {
		return 0, false
	}
	return thresholdPx / zoom, true
}

// ClosestPointOnSegment projects p onto the segment ab and clamps the result
// to the segment. A zero-length segment returns a.
func ClosestPointOnSegment(p, a, b Vec) Vec {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Vec) float64 {
	return p.Dist(ClosestPointOnSegment(p, a, b))
}

// FindVertexNear scans every ring in order and returns the first vertex within
// thresholdPx screen pixels of pos. The first match wins, not the nearest.
func FindVertexNear(pos Vec, rings [][]Vec, thresholdPx, zoom float64) (VertexHit, bool) {
	limit, ok := worldThreshold(thresholdPx, zoom)
	if !ok {
		return VertexHit{}, false
	}
	for r, ring := range rings {
		for v, p := range ring {
			if pos.Dist(p) <= limit {
				return VertexHit{Ring: r, Vertex: v}, true
			}
		}
	}
	return VertexHit{}, false
}

// FindEdgeNear returns the first edge within thresholdPx screen pixels of pos.
// Rings with fewer than 2 vertices have no edges.
func FindEdgeNear(pos Vec, rings [][]Vec, thresholdPx, zoom float64) (EdgeHit, bool) {
	limit, ok := worldThreshold(thresholdPx, zoom)
	if !ok {
		return EdgeHit{}, false
	}
	for r, ring := range rings {
		n := len(ring)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			c := ClosestPointOnSegment(pos, a, b)
			if pos.Dist(c) <= limit {
				return EdgeHit{Ring: r, Edge: i, Point: c}, true
			}
		}
	}
	return EdgeHit{}, false
}

// FindPointNear returns the index of the first point within thresholdPx
// screen pixels of pos.
func FindPointNear(pos Vec, points []Vec, thresholdPx, zoom float64) (int, bool) {
	limit, ok := worldThreshold(thresholdPx, zoom)
	if !ok {
		return -1, false
	}
	for i, p := range points {
		if pos.Dist(p) <= limit {
			return i, true
		}
	}
	return -1, false
}
