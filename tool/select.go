package tool

import (
	"slices"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
	"gopkg.in/yaml.v3"
)

type selectMode int

const (
	selectIdle selectMode = iota
	selectDragging
	selectMarquee
)

// SelectState is the scratch record of the select tool. It is replaced, never
// mutated, on every change.
type SelectState struct {
	Vertices []level.VertexRef `yaml:"vertices,omitempty"`
	Objects  []level.ObjectRef `yaml:"objects,omitempty"`

	Mode selectMode `yaml:"mode"`

	// DragStart and the original positions are recorded when a drag begins.
	// They run parallel to Vertices and Objects.
	DragStart      geom.Vec         `yaml:"drag_start"`
	OriginVertices []level.Position `yaml:"origin_vertices,omitempty"`
	OriginObjects  []level.Position `yaml:"origin_objects,omitempty"`
	MarqueeStart   geom.Vec         `yaml:"marquee_start"`
	MarqueeEnd     geom.Vec         `yaml:"marquee_end"`
}

// Empty reports whether nothing is selected.
func (st SelectState) Empty() bool {
	return len(st.Vertices) == 0 && len(st.Objects) == 0
}

// Settle returns the state with any drag or marquee dropped.
func (st SelectState) Settle() any {
	return st.settled()
}

func (st SelectState) settled() SelectState {
	st = st.clone()
	st.Mode = selectIdle
	st.OriginVertices = nil
	st.OriginObjects = nil
	return st
}

func (st SelectState) clone() SelectState {
	st.Vertices = slices.Clone(st.Vertices)
	st.Objects = slices.Clone(st.Objects)
	st.OriginVertices = slices.Clone(st.OriginVertices)
	st.OriginObjects = slices.Clone(st.OriginObjects)
	return st
}

func (st *SelectState) clearSelection() {
	st.Vertices = nil
	st.Objects = nil
	st.OriginVertices = nil
	st.OriginObjects = nil
}

func (st *SelectState) addVertex(ref level.VertexRef) {
	if !slices.Contains(st.Vertices, ref) {
		st.Vertices = append(st.Vertices, ref)
	}
}

func (st *SelectState) addObject(ref level.ObjectRef) {
	if !slices.Contains(st.Objects, ref) {
		st.Objects = append(st.Objects, ref)
	}
}

// Select picks vertices, polygons and objects, drags them and deletes them.
type Select struct {
	store *store.Store
	cfg   Config
}

func NewSelect(s *store.Store, cfg Config) *Select {
	return &Select{store: s, cfg: cfg.withDefaults()}
}

func (t *Select) ID() store.ToolID { return SelectID }
func (t *Select) Name() string     { return "Select" }
func (t *Select) Shortcut() string { return "s" }

func (t *Select) Cursor() render.Cursor {
	if t.State().Mode == selectDragging {
		return render.CursorGrabbing
	}
	return render.CursorDefault
}

// State returns the current selection with references that no longer
// resolve dropped.
func (t *Select) State() SelectState {
	st, _ := store.ToolState[SelectState](t.store, SelectID)
	lvl := t.store.Level()

	valid := true
	for _, r := range st.Vertices {
		if _, ok := lvl.Vertex(r); !ok {
			valid = false
			break
		}
	}
	for _, r := range st.Objects {
		if _, ok := lvl.ObjectPosition(r); !ok {
			valid = false
			break
		}
	}
	if valid {
		return st
	}

	st = st.clone()
	st.Vertices = slices.DeleteFunc(st.Vertices, func(r level.VertexRef) bool {
		_, ok := lvl.Vertex(r)
		return !ok
	})
	st.Objects = slices.DeleteFunc(st.Objects, func(r level.ObjectRef) bool {
		_, ok := lvl.ObjectPosition(r)
		return !ok
	})
	return st.settled()
}

func (t *Select) save(st SelectState) {
	t.store.SetToolState(SelectID, st)
}

func (t *Select) OnDeactivate(s *store.Store) {
	s.ClearToolState(SelectID)
}

func (t *Select) Clear() {
	t.store.ClearToolState(SelectID)
}

// hit is what a click landed on.
type hit struct {
	vertices []level.VertexRef
	object   *level.ObjectRef
}

func (h hit) empty() bool {
	return len(h.vertices) == 0 && h.object == nil
}

// hitTest looks for a vertex, then an object, then an edge.
func (t *Select) hitTest(world geom.Vec, zoom float64) hit {
	lvl := t.store.Level()
	rings := lvl.Rings()

	if vh, ok := geom.FindVertexNear(world, rings, t.cfg.VertexThresholdPx, zoom); ok {
		ref := level.VertexRef{Polygon: lvl.Polygons[vh.Ring].ID, Index: vh.Vertex}
		return hit{vertices: []level.VertexRef{ref}}
	}

	objects := lvl.Objects()
	points := make([]geom.Vec, len(objects))
	for i, o := range objects {
		points[i] = o.Position
	}
	if i, ok := geom.FindPointNear(world, points, t.cfg.ObjectThresholdPx, zoom); ok {
		ref := objects[i].Ref
		return hit{object: &ref}
	}

	if eh, ok := geom.FindEdgeNear(world, rings, t.cfg.EdgeThresholdPx, zoom); ok {
		p := lvl.Polygons[eh.Ring]
		refs := make([]level.VertexRef, len(p.Vertices))
		for i := range p.Vertices {
			refs[i] = level.VertexRef{Polygon: p.ID, Index: i}
		}
		return hit{vertices: refs}
	}
	return hit{}
}

func (t *Select) isSelected(st SelectState, h hit) bool {
	if h.object != nil {
		return slices.Contains(st.Objects, *h.object)
	}
	for _, r := range h.vertices {
		if !slices.Contains(st.Vertices, r) {
			return false
		}
	}
	return true
}

func (t *Select) OnPointerDown(ctx EventContext) bool {
	if ctx.Button != input.ButtonPrimary {
		return false
	}
	st := t.State().clone()
	multi := ctx.Mods.Contain(input.ModShift)

	h := t.hitTest(ctx.World, ctx.Zoom)
	if h.empty() {
		if !multi {
			st.clearSelection()
		}
		st.Mode = selectMarquee
		st.MarqueeStart = ctx.World
		st.MarqueeEnd = ctx.World
		t.save(st)
		return true
	}

	if !multi && !t.isSelected(st, h) {
		st.clearSelection()
	}
	for _, r := range h.vertices {
		st.addVertex(r)
	}
	if h.object != nil {
		st.addObject(*h.object)
	}
	t.beginDrag(&st, ctx.World)
	t.save(st)
	return true
}

// beginDrag records where everything selected was when the drag started.
func (t *Select) beginDrag(st *SelectState, at geom.Vec) {
	lvl := t.store.Level()
	st.Mode = selectDragging
	st.DragStart = at
	st.OriginVertices = make([]level.Position, len(st.Vertices))
	for i, r := range st.Vertices {
		st.OriginVertices[i], _ = lvl.Vertex(r)
	}
	st.OriginObjects = make([]level.Position, len(st.Objects))
	for i, r := range st.Objects {
		st.OriginObjects[i], _ = lvl.ObjectPosition(r)
	}
}

func (t *Select) OnPointerMove(ctx EventContext) bool {
	st := t.State()
	if st.Mode != selectIdle && !ctx.Buttons.Contain(input.HeldPrimary) {
		// the release was never delivered
		t.save(st.settled())
		return false
	}
	switch st.Mode {
	case selectDragging:
		delta := ctx.World.Sub(st.DragStart)
		t.store.Batch(func() {
			for i, r := range st.Vertices {
				t.store.SetVertex(r, st.OriginVertices[i].Add(delta))
			}
			for i, r := range st.Objects {
				t.store.MoveObject(r, st.OriginObjects[i].Add(delta))
			}
		})
		return true
	case selectMarquee:
		st = st.clone()
		st.MarqueeEnd = ctx.World
		t.save(st)
		return true
	}
	return false
}

func (t *Select) OnPointerUp(ctx EventContext) bool {
	st := t.State()
	switch st.Mode {
	case selectDragging:
		t.save(st.settled())
		return true
	case selectMarquee:
		st = st.clone()
		st.MarqueeEnd = ctx.World
		t.selectInRect(&st, geom.RectFromCorners(st.MarqueeStart, st.MarqueeEnd))
		st.Mode = selectIdle
		t.save(st)
		return true
	}
	return false
}

// selectInRect adds every vertex and object inside r, boundary included.
func (t *Select) selectInRect(st *SelectState, r geom.Rect) {
	lvl := t.store.Level()
	for _, p := range lvl.Polygons {
		for i, v := range p.Vertices {
			if r.Contains(v) {
				st.addVertex(level.VertexRef{Polygon: p.ID, Index: i})
			}
		}
	}
	for _, o := range lvl.Objects() {
		if r.Contains(o.Position) {
			st.addObject(o.Ref)
		}
	}
}

func (t *Select) OnKeyDown(ev input.KeyEvent, ctx EventContext) bool {
	switch {
	case ev.Is(input.KeyDelete), ev.Is(input.KeyBackspace):
		return t.DeleteSelection()
	case ev.Is(input.KeyEscape):
		st := t.State()
		if st.Empty() && st.Mode == selectIdle {
			return false
		}
		t.store.ClearToolState(SelectID)
		return true
	case ev.Mods.Shortcut() && ev.Is("a"):
		t.SelectAll()
		return true
	case ev.Mods.Shortcut() && ev.Is("c"):
		return t.Copy()
	case ev.Mods.Shortcut() && ev.Is("v"):
		return t.Paste()
	}
	return false
}

// DeleteSelection removes every selected vertex and object. Polygons left
// with fewer than 3 vertices disappear; the start is never deleted.
func (t *Select) DeleteSelection() bool {
	st := t.State()
	if st.Empty() {
		return false
	}
	t.store.Batch(func() {
		t.store.RemoveVertices(st.Vertices)
		for _, r := range st.Objects {
			t.store.RemoveObject(r)
		}
		t.store.ClearToolState(SelectID)
	})
	return true
}

// SelectAll selects every vertex and every object.
func (t *Select) SelectAll() {
	var st SelectState
	t.selectInRect(&st, geom.Rect{
		Min: geom.Vec{X: -maxCoord, Y: -maxCoord},
		Max: geom.Vec{X: maxCoord, Y: maxCoord},
	})
	t.save(st)
}

const maxCoord = 1e300

// clip is the clipboard payload.
type clip struct {
	Polygons []level.Polygon `yaml:"polygons,omitempty"`
	Apples   []level.Apple   `yaml:"apples,omitempty"`
	Killers  []level.Killer  `yaml:"killers,omitempty"`
	Flowers  []level.Flower  `yaml:"flowers,omitempty"`
	Pictures []level.Picture `yaml:"pictures,omitempty"`
}

// Copy writes every polygon touched by the selection and every selected
// object except the start to the clipboard.
func (t *Select) Copy() bool {
	st := t.State()
	if st.Empty() {
		return false
	}
	lvl := t.store.Level()
	var c clip
	seen := map[level.PolygonID]bool{}
	for _, r := range st.Vertices {
		if seen[r.Polygon] {
			continue
		}
		seen[r.Polygon] = true
		if p, ok := lvl.Polygon(r.Polygon); ok {
			c.Polygons = append(c.Polygons, *p)
		}
	}
	for _, r := range st.Objects {
		switch r.Kind {
		case level.KindApple:
			for _, a := range lvl.Apples {
				if a.ID == r.ID {
					c.Apples = append(c.Apples, a)
				}
			}
		case level.KindKiller:
			for _, k := range lvl.Killers {
				if k.ID == r.ID {
					c.Killers = append(c.Killers, k)
				}
			}
		case level.KindFlower:
			for _, f := range lvl.Flowers {
				if f.ID == r.ID {
					c.Flowers = append(c.Flowers, f)
				}
			}
		case level.KindPicture:
			for _, p := range lvl.Pictures {
				if p.ID == r.ID {
					c.Pictures = append(c.Pictures, p)
				}
			}
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return false
	}
	t.cfg.Clipboard.WriteText(data)
	return true
}

// PasteOffset is how far pasted items are shifted from their source.
var PasteOffset = geom.Vec{X: 1, Y: 1}

// Paste inserts the clipboard contents shifted by PasteOffset and selects
// what was pasted.
func (t *Select) Paste() bool {
	data, ok := t.cfg.Clipboard.ReadText()
	if !ok {
		return false
	}
	var c clip
	if err := yaml.Unmarshal(data, &c); err != nil {
		return false
	}
	var st SelectState
	t.store.Batch(func() {
		for _, p := range c.Polygons {
			vs := make([]level.Position, len(p.Vertices))
			for i, v := range p.Vertices {
				vs[i] = v.Add(PasteOffset)
			}
			id := t.store.AddPolygon(vs, p.Grass)
			for i := range vs {
				st.addVertex(level.VertexRef{Polygon: id, Index: i})
			}
		}
		for _, a := range c.Apples {
			id := t.store.AddApple(a.Position.Add(PasteOffset), a.Animation, a.Gravity)
			st.addObject(level.ObjectRef{Kind: level.KindApple, ID: id})
		}
		for _, k := range c.Killers {
			id := t.store.AddKiller(k.Position.Add(PasteOffset))
			st.addObject(level.ObjectRef{Kind: level.KindKiller, ID: id})
		}
		for _, f := range c.Flowers {
			id := t.store.AddFlower(f.Position.Add(PasteOffset))
			st.addObject(level.ObjectRef{Kind: level.KindFlower, ID: id})
		}
		for _, p := range c.Pictures {
			id := t.store.AddPicture(p.Name, p.Position.Add(PasteOffset))
			st.addObject(level.ObjectRef{Kind: level.KindPicture, ID: id})
		}
		t.save(st)
	})
	return !st.Empty()
}

const handleRadiusPx = 5

func (t *Select) RenderOverlay(c render.Canvas, f Frame) {
	st := t.State()
	lvl := t.store.Level()
	stroke := render.Stroke{Width: 2, Color: f.Palette.Selection}

	for _, r := range st.Vertices {
		if v, ok := lvl.Vertex(r); ok {
			c.StrokeCircle(f.Camera.WorldToScreen(v), handleRadiusPx, stroke)
		}
	}
	for _, r := range st.Objects {
		if p, ok := lvl.ObjectPosition(r); ok {
			radius := max(level.ObjectRadius*f.Camera.Zoom, handleRadiusPx) + 2
			c.StrokeCircle(f.Camera.WorldToScreen(p), radius, stroke)
		}
	}

	if st.Mode == selectMarquee {
		rect := geom.RectFromCorners(
			f.Camera.WorldToScreen(st.MarqueeStart),
			f.Camera.WorldToScreen(st.MarqueeEnd),
		)
		c.FillRect(rect, render.WithAlpha(f.Palette.Marquee, 0.2))
		c.StrokeRect(rect, render.Stroke{Width: 1, Color: f.Palette.Marquee})
	}
}
