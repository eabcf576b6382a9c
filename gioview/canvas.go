package gioview

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/render"
)

const circleSegments = 32

type xform struct {
	offset geom.Vec
	zoom   float64
}

func (x xform) apply(p geom.Vec) f32.Point {
	return f32.Point{X: float32(p.X*x.zoom + x.offset.X), Y: float32(p.Y*x.zoom + x.offset.Y)}
}

// canvas draws into a Gio op list. The current transform is applied on the
// CPU so stroke widths and radii stay in the caller's units.
type canvas struct {
	gtx    layout.Context
	theme  *material.Theme
	images map[image.Image]paint.ImageOp

	size   geom.Vec
	cur    xform
	stack  []xform
	cursor render.Cursor
}

func newCanvas(gtx layout.Context, theme *material.Theme, images map[image.Image]paint.ImageOp) *canvas {
	return &canvas{
		gtx:    gtx,
		theme:  theme,
		images: images,
		size:   geom.Vec{X: float64(gtx.Constraints.Max.X), Y: float64(gtx.Constraints.Max.Y)},
		cur:    xform{zoom: 1},
	}
}

func (c *canvas) ops() *op.Ops { return c.gtx.Ops }

func (c *canvas) Size() geom.Vec { return c.size }

func (c *canvas) Clear(col color.NRGBA) {
	rect := clip.Rect{Max: c.gtx.Constraints.Max}
	paint.FillShape(c.ops(), col, rect.Op())
}

func (c *canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *canvas) Translate(d geom.Vec) {
	c.cur.offset = c.cur.offset.Add(d.Mul(c.cur.zoom))
}

func (c *canvas) Scale(s float64) {
	c.cur.zoom *= s
}

func (c *canvas) path(rings [][]geom.Vec, closed bool) clip.PathSpec {
	var p clip.Path
	p.Begin(c.ops())
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		p.MoveTo(c.cur.apply(ring[0]))
		for _, v := range ring[1:] {
			p.LineTo(c.cur.apply(v))
		}
		if closed {
			p.Close()
		}
	}
	return p.End()
}

// FillPath fills all rings as one shape with the non-zero rule, so sky
// rings wound against their ground cut holes.
func (c *canvas) FillPath(rings [][]geom.Vec, col color.NRGBA) {
	paint.FillShape(c.ops(), col, clip.Outline{Path: c.path(rings, true)}.Op())
}

func (c *canvas) StrokePolyline(pts []geom.Vec, closed bool, s render.Stroke) {
	if len(pts) < 2 {
		return
	}
	width := float32(s.Width * c.cur.zoom)
	if width <= 0 {
		width = 1
	}
	if len(s.Dash) == 0 {
		spec := c.path([][]geom.Vec{pts}, closed)
		paint.FillShape(c.ops(), s.Color, clip.Stroke{Path: spec, Width: width}.Op())
		return
	}
	screen := make([]geom.Vec, len(pts))
	for i, p := range pts {
		sp := c.cur.apply(p)
		screen[i] = geom.Vec{X: float64(sp.X), Y: float64(sp.Y)}
	}
	var p clip.Path
	p.Begin(c.ops())
	for _, seg := range dashSegments(screen, closed, s.Dash) {
		p.MoveTo(f32.Pt(float32(seg[0].X), float32(seg[0].Y)))
		p.LineTo(f32.Pt(float32(seg[1].X), float32(seg[1].Y)))
	}
	paint.FillShape(c.ops(), s.Color, clip.Stroke{Path: p.End(), Width: width}.Op())
}

func (c *canvas) circle(center geom.Vec, radius float64) clip.PathSpec {
	ring := make([]geom.Vec, circleSegments)
	for i := range ring {
		angle := float64(i) * 2 * math.Pi / circleSegments
		ring[i] = geom.Vec{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
	}
	return c.path([][]geom.Vec{ring}, true)
}

func (c *canvas) FillCircle(center geom.Vec, radius float64, col color.NRGBA) {
	paint.FillShape(c.ops(), col, clip.Outline{Path: c.circle(center, radius)}.Op())
}

func (c *canvas) StrokeCircle(center geom.Vec, radius float64, s render.Stroke) {
	width := float32(s.Width * c.cur.zoom)
	paint.FillShape(c.ops(), s.Color, clip.Stroke{Path: c.circle(center, radius), Width: width}.Op())
}

func rectRing(r geom.Rect) []geom.Vec {
	return []geom.Vec{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
}

func (c *canvas) FillRect(r geom.Rect, col color.NRGBA) {
	paint.FillShape(c.ops(), col, clip.Outline{Path: c.path([][]geom.Vec{rectRing(r)}, true)}.Op())
}

func (c *canvas) StrokeRect(r geom.Rect, s render.Stroke) {
	c.StrokePolyline(rectRing(r), true, s)
}

// DrawImage draws img centered at center, stretched to w by h in the
// current units.
func (c *canvas) DrawImage(img image.Image, center geom.Vec, w, h, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	imgOp, ok := c.images[img]
	if !ok {
		imgOp = paint.NewImageOp(img)
		c.images[img] = imgOp
	}
	topLeft := c.cur.apply(center.Sub(geom.Vec{X: w / 2, Y: h / 2}))
	sx := float32(w * c.cur.zoom / float64(b.Dx()))
	sy := float32(h * c.cur.zoom / float64(b.Dy()))

	defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(sx, sy)).Offset(topLeft)).Push(c.ops()).Pop()
	if alpha < 1 {
		defer paint.PushOpacity(c.ops(), float32(max(alpha, 0))).Pop()
	}
	imgOp.Add(c.ops())
	paint.PaintOp{}.Add(c.ops())
}

func (c *canvas) Text(pos geom.Vec, s string, col color.NRGBA) {
	p := c.cur.apply(pos)
	defer op.Offset(image.Pt(int(p.X), int(p.Y))).Push(c.ops()).Pop()
	gtx := c.gtx
	gtx.Constraints.Min = image.Point{}
	label := material.Label(c.theme, unit.Sp(12), s)
	label.Color = col
	label.Layout(gtx)
}

func (c *canvas) SetCursor(cur render.Cursor) {
	c.cursor = cur
}

// applyCursor emits the cursor op for the canvas area.
func (c *canvas) applyCursor() {
	gioCursor(c.cursor).Add(c.ops())
}

func gioCursor(c render.Cursor) pointer.Cursor {
	switch c {
	case render.CursorGrab:
		return pointer.CursorGrab
	case render.CursorGrabbing:
		return pointer.CursorGrabbing
	case render.CursorCrosshair:
		return pointer.CursorCrosshair
	case render.CursorPointer:
		return pointer.CursorPointer
	}
	return pointer.CursorDefault
}

// dashSegments splits a polyline into the "on" pieces of a dash pattern.
// The pattern alternates on and off lengths and continues across corners.
func dashSegments(pts []geom.Vec, closed bool, pattern []float64) [][2]geom.Vec {
	total := 0.0
	for _, d := range pattern {
		total += max(d, 0)
	}
	if len(pts) < 2 || total == 0 {
		return nil
	}
	if closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}

	var out [][2]geom.Vec
	idx, left := 0, max(pattern[0], 0)
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		length := a.Dist(b)
		if length == 0 {
			continue
		}
		dir := b.Sub(a).Mul(1 / length)
		pos := 0.0
		for pos < length {
			step := min(left, length-pos)
			if idx%2 == 0 && step > 0 {
				out = append(out, [2]geom.Vec{a.Add(dir.Mul(pos)), a.Add(dir.Mul(pos + step))})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(pattern)
				left = max(pattern[idx], 0)
			}
		}
	}
	return out
}
