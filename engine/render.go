package engine

import (
	"fmt"
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/terrain"
	"github.com/bloodmagesoftware/motoed/tool"
)

// Frame renders one frame. It runs queued commands first, then draws the
// scene whether or not anything changed.
func (e *Engine) Frame(c render.Canvas, now time.Time) {
	if size := c.Size(); size.X > 0 && size.Y > 0 {
		e.size = size
	}
	e.Drain()

	f := e.frame(now)
	pal := f.Palette
	cam := f.Camera
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	c.Clear(pal.Sky)

	c.Save()
	c.Translate(cam.Offset)
	c.Scale(cam.Zoom)

	e.drawTerrain(c, pal, zoom)
	e.drawObjects(c, f)

	active := e.ActiveTool()
	if r, ok := active.(tool.Renderer); ok {
		r.Render(c, f)
	}
	c.Restore()

	if r, ok := active.(tool.OverlayRenderer); ok {
		r.RenderOverlay(c, f)
	}

	if e.store.Flags().Debug {
		e.drawDebug(c, f)
	}

	c.SetCursor(e.cursor())
}

func (e *Engine) drawTerrain(c render.Canvas, pal render.Palette, zoom float64) {
	polys := e.store.Level().Polygons
	rings := e.terrain.Rings(e.store.PolygonsVersion(), polys)
	if len(rings) > 0 {
		c.FillPath(rings, pal.Ground)
	}

	edge := render.Stroke{Width: 1.5 / zoom, Color: pal.Edge}
	grass := render.Stroke{Width: 1.5 / zoom, Color: pal.Grass}
	for _, p := range polys {
		if len(p.Vertices) < 2 {
			continue
		}
		if p.Grass {
			c.StrokePolyline(p.Vertices, true, grass)
		} else {
			c.StrokePolyline(p.Vertices, true, edge)
		}
	}
}

func (e *Engine) drawObjects(c render.Canvas, f tool.Frame) {
	lvl := e.store.Level()
	pal := f.Palette

	tool.DrawObject(c, f, tool.LookFor(pal, level.KindStart, 0, ""), lvl.Start, 1)
	for _, a := range lvl.Apples {
		tool.DrawObject(c, f, tool.LookFor(pal, level.KindApple, a.Animation, ""), a.Position, 1)
	}
	for _, k := range lvl.Killers {
		tool.DrawObject(c, f, tool.LookFor(pal, level.KindKiller, 0, ""), k.Position, 1)
	}
	for _, fl := range lvl.Flowers {
		tool.DrawObject(c, f, tool.LookFor(pal, level.KindFlower, 0, ""), fl.Position, 1)
	}
	for _, p := range lvl.Pictures {
		tool.DrawObject(c, f, tool.LookFor(pal, level.KindPicture, 0, p.Name), p.Position, 1)
	}
}

func (e *Engine) drawDebug(c render.Canvas, f tool.Frame) {
	lines := []string{
		fmt.Sprintf("mouse  %.2f, %.2f", f.Mouse.X, f.Mouse.Y),
		fmt.Sprintf("screen %.0f, %.0f", f.MouseScreen.X, f.MouseScreen.Y),
		fmt.Sprintf("offset %.1f, %.1f", f.Camera.Offset.X, f.Camera.Offset.Y),
		fmt.Sprintf("zoom   %.3f", f.Camera.Zoom),
		fmt.Sprintf("tool   %s", e.store.ActiveToolID()),
		fmt.Sprintf("polys  %d (%d terrain)", len(e.store.Level().Polygons), len(terrain.Correct(e.store.Level().Polygons))),
	}
	const lineHeight = 16
	panel := geom.Rect{
		Min: geom.Vec{X: 8, Y: 8},
		Max: geom.Vec{X: 248, Y: 16 + float64(len(lines))*lineHeight},
	}
	c.FillRect(panel, f.Palette.DebugPanel)
	for i, l := range lines {
		c.Text(geom.Vec{X: 14, Y: 12 + float64(i)*lineHeight}, l, f.Palette.DebugText)
	}
}

func (e *Engine) cursor() render.Cursor {
	if e.panning {
		return render.CursorGrabbing
	}
	if cp, ok := e.ActiveTool().(tool.CursorProvider); ok {
		return cp.Cursor()
	}
	return render.CursorDefault
}
