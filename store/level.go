package store

import (
	"cmp"
	"slices"

	"github.com/bloodmagesoftware/motoed/level"
)

func (s *Store) SetLevelName(name string) {
	if s.level.Name == name {
		return
	}
	s.level.Name = name
	s.levelTouched(false)
}

// AddPolygon appends a polygon and returns its id.
func (s *Store) AddPolygon(vertices []level.Position, grass bool) level.PolygonID {
	id := s.level.AddPolygon(vertices, grass)
	s.levelTouched(true)
	return id
}

// InsertPolygon puts p at index at of the polygon list, clamped to the list
// bounds. p keeps its id unless it is zero or already taken.
func (s *Store) InsertPolygon(at int, p level.Polygon) level.PolygonID {
	p.Vertices = slices.Clone(p.Vertices)
	if p.ID == 0 || s.level.PolygonIndex(p.ID) >= 0 {
		p.ID = level.PolygonID(s.level.NextID())
	} else if uint64(p.ID) > s.level.Seq {
		s.level.Seq = uint64(p.ID)
	}
	at = max(0, min(at, len(s.level.Polygons)))
	s.level.Polygons = slices.Insert(s.level.Polygons, at, p)
	s.levelTouched(true)
	return p.ID
}

// RemovePolygon deletes a polygon and returns it together with the index it
// occupied, so it can be restored with InsertPolygon.
func (s *Store) RemovePolygon(id level.PolygonID) (level.Polygon, int, bool) {
	i := s.level.PolygonIndex(id)
	if i < 0 {
		return level.Polygon{}, -1, false
	}
	p := s.level.Polygons[i]
	s.level.Polygons = slices.Delete(s.level.Polygons, i, i+1)
	s.levelTouched(true)
	return p, i, true
}

// UpdatePolygon replaces the vertices of a polygon.
func (s *Store) UpdatePolygon(id level.PolygonID, vertices []level.Position) bool {
	p, ok := s.level.Polygon(id)
	if !ok {
		return false
	}
	p.Vertices = slices.Clone(vertices)
	s.levelTouched(true)
	return true
}

func (s *Store) SetPolygonGrass(id level.PolygonID, grass bool) bool {
	p, ok := s.level.Polygon(id)
	if !ok {
		return false
	}
	if p.Grass == grass {
		return true
	}
	p.Grass = grass
	s.levelTouched(true)
	return true
}

// SetPolygons replaces the whole polygon list. Polygons without an id, or
// with an id already used earlier in the list, get a fresh one.
func (s *Store) SetPolygons(polys []level.Polygon) {
	out := make([]level.Polygon, 0, len(polys))
	seen := make(map[level.PolygonID]bool, len(polys))
	for _, p := range polys {
		p.Vertices = slices.Clone(p.Vertices)
		if p.ID == 0 || seen[p.ID] {
			p.ID = level.PolygonID(s.level.NextID())
		} else if uint64(p.ID) > s.level.Seq {
			s.level.Seq = uint64(p.ID)
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	s.level.Polygons = out
	s.levelTouched(true)
}

// SetVertex moves a single vertex.
func (s *Store) SetVertex(ref level.VertexRef, pos level.Position) bool {
	p, ok := s.level.Polygon(ref.Polygon)
	if !ok || ref.Index < 0 || ref.Index >= len(p.Vertices) {
		return false
	}
	if p.Vertices[ref.Index] == pos {
		return true
	}
	p.Vertices[ref.Index] = pos
	s.levelTouched(true)
	return true
}

// RemoveVertices deletes the referenced vertices. Polygons left with fewer
// than 3 vertices are removed entirely; their ids are returned.
func (s *Store) RemoveVertices(refs []level.VertexRef) []level.PolygonID {
	byPolygon := make(map[level.PolygonID][]int)
	for _, r := range refs {
		byPolygon[r.Polygon] = append(byPolygon[r.Polygon], r.Index)
	}

	var dropped []level.PolygonID
	changed := false
	for id, indices := range byPolygon {
		p, ok := s.level.Polygon(id)
		if !ok {
			continue
		}
		slices.SortFunc(indices, func(a, b int) int { return cmp.Compare(b, a) })
		indices = slices.Compact(indices)
		for _, i := range indices {
			if i < 0 || i >= len(p.Vertices) {
				continue
			}
			p.Vertices = slices.Delete(p.Vertices, i, i+1)
			changed = true
		}
		if len(p.Vertices) < 3 {
			dropped = append(dropped, id)
		}
	}
	for _, id := range dropped {
		if i := s.level.PolygonIndex(id); i >= 0 {
			s.level.Polygons = slices.Delete(s.level.Polygons, i, i+1)
		}
	}
	if changed {
		s.levelTouched(true)
	}
	slices.Sort(dropped)
	return dropped
}

func (s *Store) AddApple(pos level.Position, animation int, gravity level.Gravity) level.ObjectID {
	id := s.level.AddApple(pos, animation, gravity)
	s.levelTouched(false)
	return id
}

func (s *Store) AddKiller(pos level.Position) level.ObjectID {
	id := s.level.AddKiller(pos)
	s.levelTouched(false)
	return id
}

func (s *Store) AddFlower(pos level.Position) level.ObjectID {
	id := s.level.AddFlower(pos)
	s.levelTouched(false)
	return id
}

func (s *Store) AddPicture(name string, pos level.Position) level.ObjectID {
	id := s.level.AddPicture(name, pos)
	s.levelTouched(false)
	return id
}

// SetApple updates the animation and gravity of an apple.
func (s *Store) SetApple(id level.ObjectID, animation int, gravity level.Gravity) bool {
	for i := range s.level.Apples {
		a := &s.level.Apples[i]
		if a.ID != id {
			continue
		}
		if animation != 2 {
			animation = 1
		}
		a.Animation = animation
		a.Gravity = gravity
		s.levelTouched(false)
		return true
	}
	return false
}

// MoveObject moves any object including the start.
func (s *Store) MoveObject(ref level.ObjectRef, pos level.Position) bool {
	old, ok := s.level.ObjectPosition(ref)
	if !ok {
		return false
	}
	if old == pos {
		return true
	}
	s.level.SetObjectPosition(ref, pos)
	s.levelTouched(false)
	return true
}

// RemoveObject deletes an object. The start is refused.
func (s *Store) RemoveObject(ref level.ObjectRef) bool {
	if ref.Kind == level.KindStart {
		return false
	}
	if !s.level.RemoveObject(ref) {
		return false
	}
	s.levelTouched(false)
	return true
}

func (s *Store) SetStart(pos level.Position) {
	s.MoveObject(level.StartRef, pos)
}

// ReplaceLevel swaps in a whole new level, for example after an import.
// The store takes ownership of lvl.
func (s *Store) ReplaceLevel(lvl *level.Level) {
	if lvl == nil {
		return
	}
	s.history.Break()
	s.level = lvl
	s.levelTouched(true)
	s.history.Break()
}
