package render

import (
	"image/color"

	"golang.org/x/image/colornames"
)

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Palette is the fixed set of colors the editor draws with.
type Palette struct {
	Sky         color.NRGBA
	Ground      color.NRGBA
	Edge        color.NRGBA
	Grass       color.NRGBA
	Start       color.NRGBA
	Apple       color.NRGBA
	Killer      color.NRGBA
	Flower      color.NRGBA
	Picture     color.NRGBA
	Selection   color.NRGBA
	Marquee     color.NRGBA
	Draft       color.NRGBA
	DebugPanel  color.NRGBA
	DebugText   color.NRGBA
	VertexPoint color.NRGBA
}

// DefaultPalette is used unless a frontend supplies its own.
var DefaultPalette = Palette{
	Sky:         nrgba(colornames.Lightskyblue),
	Ground:      nrgba(colornames.Saddlebrown),
	Edge:        nrgba(colornames.Black),
	Grass:       nrgba(colornames.Limegreen),
	Start:       nrgba(colornames.Dodgerblue),
	Apple:       nrgba(colornames.Red),
	Killer:      nrgba(colornames.Black),
	Flower:      nrgba(colornames.White),
	Picture:     nrgba(colornames.Plum),
	Selection:   nrgba(colornames.Orange),
	Marquee:     nrgba(colornames.Royalblue),
	Draft:       nrgba(colornames.Yellow),
	DebugPanel:  color.NRGBA{A: 0xb0},
	DebugText:   nrgba(colornames.White),
	VertexPoint: nrgba(colornames.Gold),
}
