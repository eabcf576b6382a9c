package tool

import (
	"slices"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
)

// VertexState is the scratch record of the vertex tool.
type VertexState struct {
	// Grass is the tool variant: new polygons are grass strips when set.
	Grass bool `yaml:"grass"`

	Drawing  bool             `yaml:"drawing"`
	Vertices []level.Position `yaml:"vertices,omitempty"`
	// Original is the polygon taken out of the level for re-editing, kept
	// verbatim so cancelling can put it back at OriginalIndex.
	Original      *level.Polygon `yaml:"original,omitempty"`
	OriginalIndex int            `yaml:"original_index"`
}

func (st VertexState) clone() VertexState {
	st.Vertices = slices.Clone(st.Vertices)
	return st
}

// idle returns st with the drawing session dropped and the variant kept.
func (st VertexState) idle() VertexState {
	return VertexState{Grass: st.Grass}
}

// Vertex draws new polygons and re-opens existing ones for editing.
type Vertex struct {
	store *store.Store
	cfg   Config
}

func NewVertex(s *store.Store, cfg Config) *Vertex {
	return &Vertex{store: s, cfg: cfg.withDefaults()}
}

func (t *Vertex) ID() store.ToolID { return VertexID }
func (t *Vertex) Name() string     { return "Vertex" }
func (t *Vertex) Shortcut() string { return "v" }

func (t *Vertex) Cursor() render.Cursor { return render.CursorCrosshair }

func (t *Vertex) State() VertexState {
	st, _ := store.ToolState[VertexState](t.store, VertexID)
	return st
}

func (t *Vertex) save(st VertexState) {
	t.store.SetToolState(VertexID, st)
}

// SetGrass selects the grass or ground variant.
func (t *Vertex) SetGrass(grass bool) {
	st := t.State().clone()
	st.Grass = grass
	t.save(st)
}

func (t *Vertex) OnPointerDown(ctx EventContext) bool {
	if ctx.Button != input.ButtonPrimary {
		return false
	}
	st := t.State()
	if !st.Drawing {
		t.begin(st, ctx)
		return true
	}

	st = st.clone()
	if len(st.Vertices) >= 3 {
		if _, ok := geom.FindPointNear(ctx.World, st.Vertices[:1], t.cfg.CloseThresholdPx, ctx.Zoom); ok {
			t.finish(st)
			return true
		}
	}
	st.Vertices = append(st.Vertices, ctx.World)
	t.save(st)
	return true
}

// begin starts a drawing session: re-open a polygon when the click is on one
// of its vertices or edges, otherwise start a fresh one.
func (t *Vertex) begin(st VertexState, ctx EventContext) {
	st = st.idle()
	lvl := t.store.Level()
	rings := lvl.Rings()

	if vh, ok := geom.FindVertexNear(ctx.World, rings, t.cfg.VertexThresholdPx, ctx.Zoom); ok {
		t.store.Batch(func() {
			p, at, _ := t.store.RemovePolygon(lvl.Polygons[vh.Ring].ID)
			st.Drawing = true
			st.Vertices = geom.Rotated(p.Vertices, vh.Vertex)
			st.Original = &p
			st.OriginalIndex = at
			t.save(st)
		})
		return
	}

	if eh, ok := geom.FindEdgeNear(ctx.World, rings, t.cfg.EdgeThresholdPx, ctx.Zoom); ok {
		t.store.Batch(func() {
			p, at, _ := t.store.RemovePolygon(lvl.Polygons[eh.Ring].ID)
			vs := slices.Insert(slices.Clone(p.Vertices), eh.Edge+1, eh.Point)
			st.Drawing = true
			st.Vertices = geom.Rotated(vs, eh.Edge+1)
			st.Original = &p
			st.OriginalIndex = at
			t.save(st)
		})
		return
	}

	st.Drawing = true
	st.Vertices = []level.Position{ctx.World}
	t.save(st)
}

// finish commits the drawing when it has at least 3 vertices and cancels it
// otherwise.
func (t *Vertex) finish(st VertexState) {
	if len(st.Vertices) < 3 {
		t.cancel(st)
		return
	}
	t.store.Batch(func() {
		if st.Original != nil {
			p := *st.Original
			p.Vertices = st.Vertices
			t.store.InsertPolygon(st.OriginalIndex, p)
		} else {
			t.store.AddPolygon(st.Vertices, st.Grass)
		}
		t.save(st.idle())
	})
}

// cancel drops the drawing and puts a re-opened polygon back unchanged.
func (t *Vertex) cancel(st VertexState) {
	t.store.Batch(func() {
		if st.Original != nil {
			t.store.InsertPolygon(st.OriginalIndex, *st.Original)
		}
		t.save(st.idle())
	})
}

func (t *Vertex) OnPointerMove(EventContext) bool {
	// the engine keeps the mouse position the rubber band follows
	return false
}

func (t *Vertex) OnRightClick(EventContext) bool {
	st := t.State()
	if !st.Drawing {
		return false
	}
	t.finish(st)
	return true
}

func (t *Vertex) OnKeyDown(ev input.KeyEvent, ctx EventContext) bool {
	st := t.State()
	if ev.Is("g") && !ev.Mods.Shortcut() {
		t.SetGrass(!st.Grass)
		return true
	}
	if !st.Drawing {
		return false
	}
	switch {
	case ev.Is(input.KeyEnter):
		t.finish(st)
	case ev.Is(input.KeyEscape):
		t.cancel(st)
	case ev.Is(input.KeySpace):
		st = st.clone()
		slices.Reverse(st.Vertices)
		t.save(st)
	case ev.Is(input.KeyBackspace):
		st = st.clone()
		st.Vertices = st.Vertices[:len(st.Vertices)-1]
		if len(st.Vertices) == 0 {
			t.cancel(st)
			return true
		}
		t.save(st)
	default:
		return false
	}
	return true
}

// OnDeactivate never loses a valid polygon: it finishes a drawing with at
// least 3 vertices and restores or discards anything smaller.
func (t *Vertex) OnDeactivate(*store.Store) {
	if st := t.State(); st.Drawing {
		t.finish(st)
	}
}

// Clear drops the drawing without touching the level.
func (t *Vertex) Clear() {
	t.save(t.State().idle())
}

func (t *Vertex) color(st VertexState, pal render.Palette) render.Stroke {
	col := pal.Draft
	if st.Grass || (st.Original != nil && st.Original.Grass) {
		col = pal.Grass
	}
	return render.Stroke{Color: col}
}

func (t *Vertex) Render(c render.Canvas, f Frame) {
	st := t.State()
	if !st.Drawing {
		return
	}
	zoom := f.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	stroke := t.color(st, f.Palette)
	stroke.Width = 2 / zoom
	c.StrokePolyline(st.Vertices, false, stroke)
	for _, v := range st.Vertices {
		c.FillCircle(v, 3/zoom, f.Palette.VertexPoint)
	}
}

func (t *Vertex) RenderOverlay(c render.Canvas, f Frame) {
	st := t.State()
	if !st.Drawing || len(st.Vertices) == 0 {
		return
	}
	stroke := t.color(st, f.Palette)
	stroke.Width = 1
	last := f.Camera.WorldToScreen(st.Vertices[len(st.Vertices)-1])
	if f.MouseInside {
		c.StrokePolyline([]geom.Vec{last, f.MouseScreen}, false, stroke)
	}
	if len(st.Vertices) >= 3 {
		first := f.Camera.WorldToScreen(st.Vertices[0])
		stroke.Dash = []float64{6, 4}
		c.StrokePolyline([]geom.Vec{last, first}, false, stroke)
	}
}
