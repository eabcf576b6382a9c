package levelio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
)

func sample() *level.Level {
	l := level.New()
	l.Name = "Hill Climb"
	l.LinkID = 0xCAFEBABE
	l.AddPolygon([]level.Position{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 5}}, false)
	l.AddPolygon([]level.Position{{X: 1.5, Y: 29}, {X: 3.5, Y: 29}, {X: 2.5, Y: 28}}, true)
	l.AddApple(level.Position{X: 12.25, Y: 20}, 2, level.GravityUp)
	l.AddApple(level.Position{X: 30, Y: 20}, 1, level.GravityNone)
	l.AddKiller(level.Position{X: 40.5, Y: 25.5})
	l.AddPicture("barrel", level.Position{X: 8, Y: 27.3})
	return l
}

func TestRoundTrip(t *testing.T) {
	l := sample()
	data, err := Encode(l)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want, err := Prepare(l)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	want.ReassignIDs()
	want.TopTen = emptyTopTen()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip differs:\ngot  %s\nwant %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestTopTenSurvivesRoundTrip(t *testing.T) {
	data, err := Encode(sample())
	if err != nil {
		t.Fatal(err)
	}
	l, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	l.TopTen[0] ^= 0xFF
	l.TopTen[topTenSize-1] ^= 0x0F

	again, err := Encode(l)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(again)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.TopTen, l.TopTen) {
		t.Error("best times block was not kept")
	}
}

func TestPrepareDoesNotMutate(t *testing.T) {
	l := sample()
	before := l.Clone()
	if _, err := Prepare(l); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(l, before) {
		t.Errorf("Prepare changed its input:\n%s", spew.Sdump(l))
	}
}

func TestPrepareNudgesIntegers(t *testing.T) {
	l := level.Empty()
	l.AddPolygon([]level.Position{{X: 0, Y: 0}, {X: 10.5, Y: 0}, {X: 10.5, Y: 10.25}}, false)
	l.Start = level.Position{X: 3, Y: 4.75}
	p, err := Prepare(l)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Start; got != (level.Position{X: 3.1, Y: 4.75}) {
		t.Errorf("start = %v", got)
	}
	for _, v := range p.Polygons[0].Vertices {
		if v.X == float64(int(v.X)) || v.Y == float64(int(v.Y)) {
			t.Errorf("vertex %v still sits on an integer", v)
		}
	}
}

func TestPrepareCorrectsWinding(t *testing.T) {
	l := level.Empty()
	l.AddPolygon([]level.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, false)
	if geom.IsClockwise(l.Polygons[0].Vertices) {
		t.Fatal("fixture must start counter-clockwise")
	}
	p, err := Prepare(l)
	if err != nil {
		t.Fatal(err)
	}
	if !geom.IsClockwise(p.Polygons[0].Vertices) {
		t.Error("ground ring was not wound clockwise")
	}
}

func TestNoPolygons(t *testing.T) {
	tests := []struct {
		name  string
		polys []level.Polygon
	}{
		{name: "none"},
		{name: "only degenerate", polys: []level.Polygon{{Vertices: []level.Position{{}, {X: 1}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := level.Empty()
			l.Polygons = tt.polys
			if _, err := Encode(l); !errors.Is(err, ErrNoPolygons) {
				t.Errorf("Encode error = %v, want ErrNoPolygons", err)
			}
		})
	}
}

func TestDecodeEmptyPolygonList(t *testing.T) {
	l := level.Empty()
	l.Start = level.Position{X: 1.5, Y: 2.5}
	got, err := Decode(encode(l))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Polygons) != 0 || got.Start != l.Start {
		t.Errorf("got %s", spew.Sdump(got))
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Encode(sample())
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < len(data); n++ {
		_, err := Decode(data[:n])
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("Decode of %d bytes: error %v is not a FormatError", n, err)
		}
	}
}

func TestDecodeBadVersion(t *testing.T) {
	data, _ := Encode(sample())
	copy(data, "POT06")
	_, err := Decode(data)
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Offset != 0 {
		t.Errorf("error = %v", err)
	}
}

func TestDecodeIntegrity(t *testing.T) {
	data, _ := Encode(sample())
	// first vertex x of the first polygon
	off := 130 + 8 + 8
	data[off+7] ^= 0x01
	_, err := Decode(data)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("error = %v, want an integrity failure", err)
	}
}

func TestDecodeMissingStart(t *testing.T) {
	l := level.Empty()
	l.AddPolygon([]level.Position{{X: 0.5, Y: 0.5}, {X: 10.5, Y: 0.5}, {X: 10.5, Y: 10.5}, {X: 0.5, Y: 10.5}}, false)
	data := encode(l)
	// header, polygon count, one polygon of four vertices, object count,
	// start position: the start's kind field follows.
	off := 130 + 8 + 8 + 4*16 + 8 + 16
	data[off] = objKiller
	if _, err := Decode(data); !errors.Is(err, ErrNoStart) {
		t.Errorf("error = %v, want ErrNoStart", err)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		size int
		want string
	}{
		{name: "ascii", in: "barrel", size: 10, want: "barrel"},
		{name: "latin1", in: "Ölberg", size: 10, want: "Ölberg"},
		{name: "truncated", in: "averyverylongname", size: 10, want: "averyvery"},
		{name: "unsupported rune", in: "a☃b", size: 10, want: "a?b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := encodeString(tt.in, tt.size)
			if len(bs) != tt.size {
				t.Fatalf("field is %d bytes, want %d", len(bs), tt.size)
			}
			if got := decodeString(bs); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCryptIsSymmetric(t *testing.T) {
	buf := make([]byte, topTenSize)
	crypt(buf)
	if reflect.DeepEqual(buf, make([]byte, topTenSize)) {
		t.Fatal("crypt left the block unchanged")
	}
	crypt(buf)
	if !reflect.DeepEqual(buf, make([]byte, topTenSize)) {
		t.Error("crypt is not its own inverse")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	want := Summary{
		Name:          "Hill Climb",
		Polygons:      3,
		GrassPolygons: 1,
		Vertices:      10,
		Apples:        2,
		Killers:       1,
		Flowers:       1,
		Pictures:      1,
		Start:         level.Position{X: 4, Y: level.DefaultHeight - 2},
	}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}
}
