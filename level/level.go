package level

import (
	"slices"
)

// New returns the built-in default level: one rectangular boundary with the
// start near the bottom left and a flower near the bottom right.
func New() *Level {
	l := &Level{
		Name:     "Unnamed",
		Polygons: make([]Polygon, 0),
		Apples:   make([]Apple, 0),
		Killers:  make([]Killer, 0),
		Flowers:  make([]Flower, 0),
		Pictures: make([]Picture, 0),
		LGR:      "default",
		Ground:   "ground",
		Sky:      "sky",
	}
	l.AddPolygon([]Position{
		{X: 0, Y: 0},
		{X: DefaultWidth, Y: 0},
		{X: DefaultWidth, Y: DefaultHeight},
		{X: 0, Y: DefaultHeight},
	}, false)
	l.Start = Position{X: 4, Y: DefaultHeight - 2}
	l.AddFlower(Position{X: DefaultWidth - 4, Y: DefaultHeight - 2})
	return l
}

// Empty returns a level without terrain or objects besides the start.
func Empty() *Level {
	return &Level{
		Polygons: make([]Polygon, 0),
		Apples:   make([]Apple, 0),
		Killers:  make([]Killer, 0),
		Flowers:  make([]Flower, 0),
		Pictures: make([]Picture, 0),
	}
}

// NextID hands out a fresh id shared by polygons and objects.
func (l *Level) NextID() uint64 {
	l.Seq++
	return l.Seq
}

// AddPolygon appends a polygon with a fresh id. The vertex slice is copied.
func (l *Level) AddPolygon(vertices []Position, grass bool) PolygonID {
	id := PolygonID(l.NextID())
	l.Polygons = append(l.Polygons, Polygon{ID: id, Vertices: slices.Clone(vertices), Grass: grass})
	return id
}

// AddApple appends an apple with a fresh id.
func (l *Level) AddApple(pos Position, animation int, gravity Gravity) ObjectID {
	if animation != 2 {
		animation = 1
	}
	id := ObjectID(l.NextID())
	l.Apples = append(l.Apples, Apple{ID: id, Position: pos, Animation: animation, Gravity: gravity})
	return id
}

// AddKiller appends a killer with a fresh id.
func (l *Level) AddKiller(pos Position) ObjectID {
	id := ObjectID(l.NextID())
	l.Killers = append(l.Killers, Killer{ID: id, Position: pos})
	return id
}

// AddFlower appends a flower with a fresh id.
func (l *Level) AddFlower(pos Position) ObjectID {
	id := ObjectID(l.NextID())
	l.Flowers = append(l.Flowers, Flower{ID: id, Position: pos})
	return id
}

// AddPicture appends a picture with a fresh id and the default distance.
func (l *Level) AddPicture(name string, pos Position) ObjectID {
	id := ObjectID(l.NextID())
	l.Pictures = append(l.Pictures, Picture{
		ID:       id,
		Name:     name,
		Position: pos,
		Distance: DefaultPictureDistance,
	})
	return id
}

// Clone returns a deep copy sharing no slices with l.
func (l *Level) Clone() *Level {
	c := *l
	c.Polygons = make([]Polygon, len(l.Polygons))
	for i, p := range l.Polygons {
		p.Vertices = slices.Clone(p.Vertices)
		c.Polygons[i] = p
	}
	c.Apples = slices.Clone(l.Apples)
	c.Killers = slices.Clone(l.Killers)
	c.Flowers = slices.Clone(l.Flowers)
	c.Pictures = slices.Clone(l.Pictures)
	c.TopTen = slices.Clone(l.TopTen)
	normalize(&c)
	return &c
}

// normalize replaces nil collections with empty ones so clones compare equal
// to the levels they were made from after a round trip through persistence.
func normalize(l *Level) {
	if l.Polygons == nil {
		l.Polygons = make([]Polygon, 0)
	}
	if l.Apples == nil {
		l.Apples = make([]Apple, 0)
	}
	if l.Killers == nil {
		l.Killers = make([]Killer, 0)
	}
	if l.Flowers == nil {
		l.Flowers = make([]Flower, 0)
	}
	if l.Pictures == nil {
		l.Pictures = make([]Picture, 0)
	}
}

// PolygonIndex returns the slice index of the polygon with the given id.
func (l *Level) PolygonIndex(id PolygonID) int {
	for i := range l.Polygons {
		if l.Polygons[i].ID == id {
			return i
		}
	}
	return -1
}

// Polygon returns the polygon with the given id.
func (l *Level) Polygon(id PolygonID) (*Polygon, bool) {
	i := l.PolygonIndex(id)
	if i < 0 {
		return nil, false
	}
	return &l.Polygons[i], true
}

// Vertex returns the position a vertex reference points at.
func (l *Level) Vertex(ref VertexRef) (Position, bool) {
	p, ok := l.Polygon(ref.Polygon)
	if !ok || ref.Index < 0 || ref.Index >= len(p.Vertices) {
		return Position{}, false
	}
	return p.Vertices[ref.Index], true
}

// Rings returns the vertex slices of all polygons in list order.
// The slices alias the level's storage and must not be modified.
func (l *Level) Rings() [][]Position {
	rings := make([][]Position, len(l.Polygons))
	for i, p := range l.Polygons {
		rings[i] = p.Vertices
	}
	return rings
}

// ObjectPosition returns the position of the referenced object.
func (l *Level) ObjectPosition(ref ObjectRef) (Position, bool) {
	switch ref.Kind {
	case KindStart:
		return l.Start, true
	case KindApple:
		if i := l.appleIndex(ref.ID); i >= 0 {
			return l.Apples[i].Position, true
		}
	case KindKiller:
		if i := l.killerIndex(ref.ID); i >= 0 {
			return l.Killers[i].Position, true
		}
	case KindFlower:
		if i := l.flowerIndex(ref.ID); i >= 0 {
			return l.Flowers[i].Position, true
		}
	case KindPicture:
		if i := l.pictureIndex(ref.ID); i >= 0 {
			return l.Pictures[i].Position, true
		}
	}
	return Position{}, false
}

// SetObjectPosition moves the referenced object. It reports false when the
// object does not exist.
func (l *Level) SetObjectPosition(ref ObjectRef, pos Position) bool {
	switch ref.Kind {
	case KindStart:
		l.Start = pos
		return true
	case KindApple:
		if i := l.appleIndex(ref.ID); i >= 0 {
			l.Apples[i].Position = pos
			return true
		}
	case KindKiller:
		if i := l.killerIndex(ref.ID); i >= 0 {
			l.Killers[i].Position = pos
			return true
		}
	case KindFlower:
		if i := l.flowerIndex(ref.ID); i >= 0 {
			l.Flowers[i].Position = pos
			return true
		}
	case KindPicture:
		if i := l.pictureIndex(ref.ID); i >= 0 {
			l.Pictures[i].Position = pos
			return true
		}
	}
	return false
}

// RemoveObject deletes the referenced object. The start is never removed.
func (l *Level) RemoveObject(ref ObjectRef) bool {
	switch ref.Kind {
	case KindApple:
		if i := l.appleIndex(ref.ID); i >= 0 {
			l.Apples = slices.Delete(l.Apples, i, i+1)
			return true
		}
	case KindKiller:
		if i := l.killerIndex(ref.ID); i >= 0 {
			l.Killers = slices.Delete(l.Killers, i, i+1)
			return true
		}
	case KindFlower:
		if i := l.flowerIndex(ref.ID); i >= 0 {
			l.Flowers = slices.Delete(l.Flowers, i, i+1)
			return true
		}
	case KindPicture:
		if i := l.pictureIndex(ref.ID); i >= 0 {
			l.Pictures = slices.Delete(l.Pictures, i, i+1)
			return true
		}
	}
	return false
}

// ObjectEntry pairs an object reference with its position.
type ObjectEntry struct {
	Ref      ObjectRef
	Position Position
}

// Objects lists every object in hit-test order: start, apples, killers,
// flowers, pictures.
func (l *Level) Objects() []ObjectEntry {
	out := make([]ObjectEntry, 0, 1+len(l.Apples)+len(l.Killers)+len(l.Flowers)+len(l.Pictures))
	out = append(out, ObjectEntry{Ref: StartRef, Position: l.Start})
	for _, a := range l.Apples {
		out = append(out, ObjectEntry{Ref: ObjectRef{Kind: KindApple, ID: a.ID}, Position: a.Position})
	}
	for _, k := range l.Killers {
		out = append(out, ObjectEntry{Ref: ObjectRef{Kind: KindKiller, ID: k.ID}, Position: k.Position})
	}
	for _, f := range l.Flowers {
		out = append(out, ObjectEntry{Ref: ObjectRef{Kind: KindFlower, ID: f.ID}, Position: f.Position})
	}
	for _, p := range l.Pictures {
		out = append(out, ObjectEntry{Ref: ObjectRef{Kind: KindPicture, ID: p.ID}, Position: p.Position})
	}
	return out
}

func (l *Level) appleIndex(id ObjectID) int {
	return slices.IndexFunc(l.Apples, func(a Apple) bool { return a.ID == id })
}

func (l *Level) killerIndex(id ObjectID) int {
	return slices.IndexFunc(l.Killers, func(k Killer) bool { return k.ID == id })
}

func (l *Level) flowerIndex(id ObjectID) int {
	return slices.IndexFunc(l.Flowers, func(f Flower) bool { return f.ID == id })
}

func (l *Level) pictureIndex(id ObjectID) int {
	return slices.IndexFunc(l.Pictures, func(p Picture) bool { return p.ID == id })
}

// ReassignIDs gives every polygon and object a fresh id. Used after decoding
// data that carries no ids.
func (l *Level) ReassignIDs() {
	l.Seq = 0
	for i := range l.Polygons {
		l.Polygons[i].ID = PolygonID(l.NextID())
	}
	for i := range l.Apples {
		l.Apples[i].ID = ObjectID(l.NextID())
	}
	for i := range l.Killers {
		l.Killers[i].ID = ObjectID(l.NextID())
	}
	for i := range l.Flowers {
		l.Flowers[i].ID = ObjectID(l.NextID())
	}
	for i := range l.Pictures {
		l.Pictures[i].ID = ObjectID(l.NextID())
	}
}
