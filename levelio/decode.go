package levelio

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
)

type reader struct {
	data []byte
	pos  int
}

func (r *reader) fail(format string, args ...any) error {
	return &FormatError{Offset: r.pos, Msg: fmt.Sprintf(format, args...)}
}

func (r *reader) take(n int, what string) ([]byte, error) {
	if n < 0 || len(r.data)-r.pos < n {
		return nil, r.fail("unexpected end of data reading %s", what)
	}
	bs := r.data[r.pos : r.pos+n]
	r.pos += n
	return bs, nil
}

func (r *reader) f64(what string) (float64, error) {
	bs, err := r.take(8, what)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(bs)), nil
}

func (r *reader) i32(what string) (int32, error) {
	bs, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(bs)), nil
}

func (r *reader) u32(what string) (uint32, error) {
	bs, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (r *reader) str(n int, what string) (string, error) {
	bs, err := r.take(n, what)
	if err != nil {
		return "", err
	}
	return decodeString(bs), nil
}

func (r *reader) pos2(what string) (level.Position, error) {
	x, err := r.f64(what)
	if err != nil {
		return level.Position{}, err
	}
	y, err := r.f64(what)
	if err != nil {
		return level.Position{}, err
	}
	p := geom.Vec{X: x, Y: y}
	if !p.IsFinite() {
		return p, r.fail("%s is not finite", what)
	}
	return p, nil
}

// count reads a magic-offset element count and bounds it by the bytes left,
// given that every element takes at least minSize bytes.
func (r *reader) count(magic float64, minSize int, what string) (int, error) {
	v, err := r.f64(what + " count")
	if err != nil {
		return 0, err
	}
	n := math.Round(v - magic)
	if math.IsNaN(n) || n < 0 || n > float64((len(r.data)-r.pos)/minSize) {
		return 0, r.fail("bad %s count %v", what, v)
	}
	return int(n), nil
}

// Decode parses a POT14 level. Malformed input yields a *FormatError,
// possibly wrapped; a level without a start yields ErrNoStart.
func Decode(data []byte) (*level.Level, error) {
	r := &reader{data: data}
	l := level.Empty()

	magic, err := r.take(len(version), "version")
	if err != nil {
		return nil, err
	}
	if string(magic) != version {
		r.pos = 0
		return nil, r.fail("unsupported version %q", magic)
	}
	if _, err := r.take(2, "link"); err != nil {
		return nil, err
	}
	if l.LinkID, err = r.u32("link"); err != nil {
		return nil, err
	}
	var sums [4]float64
	for i := range sums {
		if sums[i], err = r.f64("integrity"); err != nil {
			return nil, err
		}
	}
	if l.Name, err = r.str(nameSize, "name"); err != nil {
		return nil, err
	}
	if l.LGR, err = r.str(lgrSize, "lgr"); err != nil {
		return nil, err
	}
	if l.Ground, err = r.str(textureSize, "ground"); err != nil {
		return nil, err
	}
	if l.Sky, err = r.str(textureSize, "sky"); err != nil {
		return nil, err
	}

	if err := decodePolygons(r, l); err != nil {
		return nil, errors.Wrap(err, "reading polygons")
	}
	if err := decodeObjects(r, l); err != nil {
		return nil, err
	}
	if err := decodePictures(r, l); err != nil {
		return nil, errors.Wrap(err, "reading pictures")
	}

	marker, err := r.u32("end of data")
	if err != nil {
		return nil, err
	}
	if marker != endOfData {
		return nil, r.fail("bad end of data marker 0x%x", marker)
	}
	top, err := r.take(topTenSize, "top ten")
	if err != nil {
		return nil, err
	}
	l.TopTen = slices.Clone(top)
	if marker, err = r.u32("end of file"); err != nil {
		return nil, err
	}
	if marker != endOfFile {
		return nil, r.fail("bad end of file marker 0x%x", marker)
	}

	if want := integrity(l); math.Abs(want-sums[0]) > 1e-6*math.Max(1, math.Abs(want)) {
		return nil, &FormatError{Offset: len(version) + 6, Msg: "integrity check failed"}
	}

	l.ReassignIDs()
	return l, nil
}

func decodePolygons(r *reader, l *level.Level) error {
	n, err := r.count(polygonMagic, 8, "polygon")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		grass, err := r.i32("grass flag")
		if err != nil {
			return errors.Wrapf(err, "polygon %d", i)
		}
		nv, err := r.i32("vertex count")
		if err != nil {
			return errors.Wrapf(err, "polygon %d", i)
		}
		if nv < 0 || int(nv) > (len(r.data)-r.pos)/16 {
			return errors.Wrapf(r.fail("bad vertex count %d", nv), "polygon %d", i)
		}
		vs := make([]level.Position, nv)
		for j := range vs {
			if vs[j], err = r.pos2("vertex"); err != nil {
				return errors.Wrapf(err, "polygon %d", i)
			}
		}
		l.Polygons = append(l.Polygons, level.Polygon{Vertices: vs, Grass: grass != 0})
	}
	return nil
}

func decodeObjects(r *reader, l *level.Level) error {
	n, err := r.count(objectMagic, 28, "object")
	if err != nil {
		return errors.Wrap(err, "reading objects")
	}
	starts := 0
	for i := 0; i < n; i++ {
		pos, err := r.pos2("object position")
		if err != nil {
			return errors.Wrapf(err, "object %d", i)
		}
		var fields [3]int32
		for k := range fields {
			if fields[k], err = r.i32("object field"); err != nil {
				return errors.Wrapf(err, "object %d", i)
			}
		}
		kind, gravity, animation := fields[0], fields[1], fields[2]
		switch kind {
		case objStart:
			starts++
			l.Start = pos
		case objApple:
			g := level.Gravity(gravity)
			if g < level.GravityNone || g > level.GravityRight {
				g = level.GravityNone
			}
			l.Apples = append(l.Apples, level.Apple{Position: pos, Animation: normalizeAnimation(int(animation) + 1), Gravity: g})
		case objKiller:
			l.Killers = append(l.Killers, level.Killer{Position: pos})
		case objFlower:
			l.Flowers = append(l.Flowers, level.Flower{Position: pos})
		default:
			return errors.Wrapf(r.fail("unknown object kind %d", kind), "object %d", i)
		}
	}
	switch starts {
	case 0:
		return ErrNoStart
	case 1:
		return nil
	default:
		return errors.Wrapf(r.fail("level has %d start positions", starts), "reading objects")
	}
}

func decodePictures(r *reader, l *level.Level) error {
	n, err := r.count(pictureMagic, 54, "picture")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		var p level.Picture
		if p.Name, err = r.str(textureSize, "picture name"); err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		if p.Texture, err = r.str(textureSize, "picture texture"); err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		if p.Mask, err = r.str(textureSize, "picture mask"); err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		if p.Position, err = r.pos2("picture position"); err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		distance, err := r.i32("picture distance")
		if err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		clipping, err := r.i32("picture clipping")
		if err != nil {
			return errors.Wrapf(err, "picture %d", i)
		}
		p.Distance = int(distance)
		p.Clipping = level.Clipping(clipping)
		if p.Clipping < level.ClipUnclipped || p.Clipping > level.ClipSky {
			p.Clipping = level.ClipGround
		}
		l.Pictures = append(l.Pictures, p)
	}
	return nil
}

func normalizeAnimation(a int) int {
	if a != 2 {
		return 1
	}
	return a
}
