package tool

import (
	"image/color"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
)

// PixelsPerUnit converts sprite pixels to world units.
const PixelsPerUnit = 48.0

// Look says how an object is drawn: the sprite to use when it is loaded and
// the flat color to fall back to.
type Look struct {
	Sprite   string
	Fallback color.NRGBA
	// Picture looks are drawn at sprite size with a rectangle fallback.
	Picture bool
}

// LookFor returns the look of an object kind. animation selects the apple
// frame; name is the picture's sprite name.
func LookFor(pal render.Palette, kind level.ObjectKind, animation int, name string) Look {
	switch kind {
	case level.KindStart:
		return Look{Sprite: "q1bike", Fallback: pal.Start}
	case level.KindApple:
		if animation == 2 {
			return Look{Sprite: "qfood2", Fallback: pal.Apple}
		}
		return Look{Sprite: "qfood1", Fallback: pal.Apple}
	case level.KindKiller:
		return Look{Sprite: "qkiller", Fallback: pal.Killer}
	case level.KindFlower:
		return Look{Sprite: "qexit", Fallback: pal.Flower}
	case level.KindPicture:
		return Look{Sprite: name, Fallback: pal.Picture, Picture: true}
	}
	return Look{Fallback: pal.Edge}
}

// DrawObject draws one object at pos in world space. Missing sprites fall
// back to a flat shape; rendering never waits for assets.
func DrawObject(c render.Canvas, f Frame, look Look, pos geom.Vec, alpha float64) {
	if f.ShowSprites && f.Sprites != nil && look.Sprite != "" {
		if img, ok := f.Sprites.Sprite(look.Sprite); ok {
			w, h := 2*level.ObjectRadius, 2*level.ObjectRadius
			if look.Picture {
				b := img.Bounds()
				w, h = float64(b.Dx())/PixelsPerUnit, float64(b.Dy())/PixelsPerUnit
			}
			c.DrawImage(img, pos, w, h, alpha)
			return
		}
	}
	col := render.WithAlpha(look.Fallback, alpha)
	if look.Picture {
		half := geom.Vec{X: 0.5, Y: 0.5}
		c.FillRect(geom.Rect{Min: pos.Sub(half), Max: pos.Add(half)}, col)
		return
	}
	c.FillCircle(pos, level.ObjectRadius, col)
}
