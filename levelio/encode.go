package levelio

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/terrain"
)

// Prepare returns a copy of l ready for serialization: terrain rings wound
// by role, degenerate polygons dropped, and coordinates that sit exactly on
// an integer moved by 0.1 since the game mishandles them.
func Prepare(l *level.Level) (*level.Level, error) {
	if len(l.Polygons) == 0 {
		return nil, ErrNoPolygons
	}
	out := l.Clone()

	polys := make([]level.Polygon, 0, len(out.Polygons))
	for i, p := range out.Polygons {
		switch {
		case len(p.Vertices) < 3:
			continue
		case terrain.IsTerrain(p):
			p = terrain.CorrectWinding(out.Polygons, i)
		}
		for j := range p.Vertices {
			p.Vertices[j] = nudge(p.Vertices[j])
		}
		polys = append(polys, p)
	}
	if len(polys) == 0 {
		return nil, ErrNoPolygons
	}
	out.Polygons = polys

	out.Start = nudge(out.Start)
	for i := range out.Apples {
		out.Apples[i].Position = nudge(out.Apples[i].Position)
	}
	for i := range out.Killers {
		out.Killers[i].Position = nudge(out.Killers[i].Position)
	}
	for i := range out.Flowers {
		out.Flowers[i].Position = nudge(out.Flowers[i].Position)
	}
	for i := range out.Pictures {
		out.Pictures[i].Position = nudge(out.Pictures[i].Position)
	}
	return out, nil
}

func nudge(p level.Position) level.Position {
	if p.X == math.Trunc(p.X) {
		p.X += 0.1
	}
	if p.Y == math.Trunc(p.Y) {
		p.Y += 0.1
	}
	return p
}

type writer struct {
	buf []byte
}

func (w *writer) f64(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

func (w *writer) i32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) str(s string, size int) {
	w.buf = append(w.buf, encodeString(s, size)...)
}

func (w *writer) pos(p level.Position) {
	w.f64(p.X)
	w.f64(p.Y)
}

// Encode prepares l and serializes it as POT14.
func Encode(l *level.Level) ([]byte, error) {
	p, err := Prepare(l)
	if err != nil {
		return nil, errors.Wrap(err, "preparing level")
	}
	return encode(p), nil
}

// encode writes an already prepared level.
func encode(l *level.Level) []byte {
	w := &writer{}
	w.buf = append(w.buf, version...)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(l.LinkID&0xFFFF))
	w.u32(l.LinkID)

	sum := integrity(l)
	base := 36713 + float64(l.LinkID%5000000)
	w.f64(sum)
	w.f64(base - sum)
	w.f64(base + 1 - sum)
	w.f64(base + 2 - sum)

	w.str(l.Name, nameSize)
	w.str(l.LGR, lgrSize)
	w.str(l.Ground, textureSize)
	w.str(l.Sky, textureSize)

	w.f64(float64(len(l.Polygons)) + polygonMagic)
	for _, p := range l.Polygons {
		if p.Grass {
			w.i32(1)
		} else {
			w.i32(0)
		}
		w.i32(int32(len(p.Vertices)))
		for _, v := range p.Vertices {
			w.pos(v)
		}
	}

	objects := 1 + len(l.Apples) + len(l.Killers) + len(l.Flowers)
	w.f64(float64(objects) + objectMagic)
	object := func(pos level.Position, kind int32, gravity level.Gravity, animation int) {
		w.pos(pos)
		w.i32(kind)
		w.i32(int32(gravity))
		w.i32(int32(animation))
	}
	object(l.Start, objStart, level.GravityNone, 0)
	for _, a := range l.Apples {
		object(a.Position, objApple, a.Gravity, normalizeAnimation(a.Animation)-1)
	}
	for _, k := range l.Killers {
		object(k.Position, objKiller, level.GravityNone, 0)
	}
	for _, f := range l.Flowers {
		object(f.Position, objFlower, level.GravityNone, 0)
	}

	w.f64(float64(len(l.Pictures)) + pictureMagic)
	for _, p := range l.Pictures {
		w.str(p.Name, textureSize)
		w.str(p.Texture, textureSize)
		w.str(p.Mask, textureSize)
		w.pos(p.Position)
		w.i32(int32(p.Distance))
		w.i32(int32(p.Clipping))
	}

	w.u32(endOfData)
	if len(l.TopTen) == topTenSize {
		w.buf = append(w.buf, l.TopTen...)
	} else {
		w.buf = append(w.buf, emptyTopTen()...)
	}
	w.u32(endOfFile)
	return w.buf
}

// emptyTopTen is the encrypted block of a level nobody has finished yet.
func emptyTopTen() []byte {
	top := make([]byte, topTenSize)
	crypt(top)
	return top
}
