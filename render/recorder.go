package render

import (
	"image"
	"image/color"

	"github.com/bloodmagesoftware/motoed/geom"
)

// Op is one recorded canvas call.
type Op struct {
	Name   string
	Rings  [][]geom.Vec
	Points []geom.Vec
	Rect   geom.Rect
	Color  color.NRGBA
	Stroke Stroke
	Closed bool
	Radius float64
	Alpha  float64
	Text   string
	Cursor Cursor
	// Offset, Zoom and Depth capture the transform at the time of the call.
	Offset geom.Vec
	Zoom   float64
	Depth  int
}

type transform struct {
	offset geom.Vec
	zoom   float64
}

// Recorder is a Canvas that records every call instead of drawing.
type Recorder struct {
	W, H   float64
	Ops    []Op
	Cursor Cursor

	cur   transform
	stack []transform
}

// NewRecorder returns a recorder of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, cur: transform{zoom: 1}}
}

func (r *Recorder) add(op Op) {
	op.Offset = r.cur.offset
	op.Zoom = r.cur.zoom
	op.Depth = len(r.stack)
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Size() geom.Vec { return geom.Vec{X: r.W, Y: r.H} }

func (r *Recorder) Clear(c color.NRGBA) {
	r.add(Op{Name: "Clear", Color: c})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.cur)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(d geom.Vec) {
	r.cur.offset = r.cur.offset.Add(d.Mul(r.cur.zoom))
}

func (r *Recorder) Scale(s float64) {
	r.cur.zoom *= s
}

func (r *Recorder) FillPath(rings [][]geom.Vec, c color.NRGBA) {
	r.add(Op{Name: "FillPath", Rings: rings, Color: c})
}

func (r *Recorder) StrokePolyline(pts []geom.Vec, closed bool, s Stroke) {
	r.add(Op{Name: "StrokePolyline", Points: pts, Closed: closed, Stroke: s, Color: s.Color})
}

func (r *Recorder) FillCircle(center geom.Vec, radius float64, c color.NRGBA) {
	r.add(Op{Name: "FillCircle", Points: []geom.Vec{center}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center geom.Vec, radius float64, s Stroke) {
	r.add(Op{Name: "StrokeCircle", Points: []geom.Vec{center}, Radius: radius, Stroke: s, Color: s.Color})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.NRGBA) {
	r.add(Op{Name: "FillRect", Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect geom.Rect, s Stroke) {
	r.add(Op{Name: "StrokeRect", Rect: rect, Stroke: s, Color: s.Color})
}

func (r *Recorder) DrawImage(img image.Image, center geom.Vec, w, h, alpha float64) {
	r.add(Op{Name: "DrawImage", Points: []geom.Vec{center}, Rect: geom.Rect{Max: geom.Vec{X: w, Y: h}}, Alpha: alpha})
}

func (r *Recorder) Text(pos geom.Vec, s string, c color.NRGBA) {
	r.add(Op{Name: "Text", Points: []geom.Vec{pos}, Text: s, Color: c})
}

func (r *Recorder) SetCursor(c Cursor) {
	r.Cursor = c
	r.add(Op{Name: "SetCursor", Cursor: c})
}

// Names returns the names of all recorded ops in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		names[i] = op.Name
	}
	return names
}

// Find returns the recorded ops with the given name.
func (r *Recorder) Find(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops and the transform stack.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.stack = nil
	r.cur = transform{zoom: 1}
}
