// Package levelio reads and writes the game's binary level format (POT14)
// and prepares an editor level for export.
//
// A .lev file is little endian:
//
//	"POT14" | link u16 | link u32 | integrity 4*f64
//	name [51] | lgr [16] | ground [10] | sky [10]   latin-1, NUL padded
//	polygon count f64 (n + 0.4643643)
//	    grass i32 | vertex count i32 | x f64 y f64 ...
//	object count f64 (n + 0.4643643)
//	    x f64 | y f64 | kind i32 | gravity i32 | animation i32
//	picture count f64 (n + 0.2345672)
//	    name [10] | texture [10] | mask [10] | x f64 | y f64 | distance i32 | clipping i32
//	end of data i32 | top ten [688] encrypted | end of file i32
package levelio

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bloodmagesoftware/motoed/level"
)

const (
	version = "POT14"

	polygonMagic = 0.4643643
	objectMagic  = 0.4643643
	pictureMagic = 0.2345672

	endOfData = 0x0067103A
	endOfFile = 0x00845D52

	topTenSize = 688

	nameSize    = 51
	lgrSize     = 16
	textureSize = 10

	// integrityScale multiplies the coordinate sum stored in the header.
	integrityScale = 3247.764325643
)

const (
	objFlower = 1
	objApple  = 2
	objKiller = 3
	objStart  = 4
)

var (
	// ErrNoPolygons is returned by Prepare and Encode for a level without
	// terrain.
	ErrNoPolygons = errors.New("level has no polygons")
	// ErrNoStart is returned by Decode when the file has no start object.
	ErrNoStart = errors.New("level has no start position")
)

// FormatError describes malformed input. Offset is the byte position where
// decoding gave up.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed level at byte %d: %s", e.Offset, e.Msg)
}

// Summary is the aggregate shape of a level as reported to automation
// clients.
type Summary struct {
	Name          string         `json:"name"`
	Polygons      int            `json:"polygons"`
	GrassPolygons int            `json:"grass_polygons"`
	Vertices      int            `json:"vertices"`
	Apples        int            `json:"apples"`
	Killers       int            `json:"killers"`
	Flowers       int            `json:"flowers"`
	Pictures      int            `json:"pictures"`
	Start         level.Position `json:"start"`
}

func Summarize(l *level.Level) Summary {
	s := Summary{
		Name:     l.Name,
		Polygons: len(l.Polygons),
		Apples:   len(l.Apples),
		Killers:  len(l.Killers),
		Flowers:  len(l.Flowers),
		Pictures: len(l.Pictures),
		Start:    l.Start,
	}
	for _, p := range l.Polygons {
		s.Vertices += len(p.Vertices)
		if p.Grass {
			s.GrassPolygons++
		}
	}
	return s
}

// integrity returns the coordinate checksum the header's first value
// carries.
func integrity(l *level.Level) float64 {
	var sum float64
	for _, p := range l.Polygons {
		for _, v := range p.Vertices {
			sum += v.X + v.Y
		}
	}
	sum += l.Start.X + l.Start.Y + objStart
	for _, a := range l.Apples {
		sum += a.Position.X + a.Position.Y + objApple
	}
	for _, k := range l.Killers {
		sum += k.Position.X + k.Position.Y + objKiller
	}
	for _, f := range l.Flowers {
		sum += f.Position.X + f.Position.Y + objFlower
	}
	for _, p := range l.Pictures {
		sum += p.Position.X + p.Position.Y
	}
	return sum * integrityScale
}

// crypt toggles the top ten block encryption.
func crypt(buf []byte) {
	a, b := int16(0x15), int16(0x2637)
	for i := range buf {
		buf[i] ^= byte(a)
		b += (a % 0xD3D) * 0xD3D
		a = b*0x1F + 0xD3D
	}
}
