package terrain

import "github.com/bloodmagesoftware/motoed/level"

// Cache memoizes Correct for one polygon version. Callers pass a version
// that changes whenever any polygon is added, removed or edited.
type Cache struct {
	version uint64
	valid   bool
	rings   [][]level.Position
	hits    int
	misses  int
}

// Rings returns the corrected terrain rings for polys. The result is
// recomputed only when version differs from the previous call.
func (c *Cache) Rings(version uint64, polys []level.Polygon) [][]level.Position {
	if c.valid && c.version == version {
		c.hits++
		return c.rings
	}
	c.misses++
	corrected := Correct(polys)
	rings := make([][]level.Position, len(corrected))
	for i, p := range corrected {
		rings[i] = p.Vertices
	}
	c.rings = rings
	c.version = version
	c.valid = true
	return rings
}

// Invalidate forces the next Rings call to recompute.
func (c *Cache) Invalidate() {
	c.valid = false
}

// Stats returns how many calls were served from the cache and how many
// recomputed.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
