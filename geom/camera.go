package geom

// Camera maps world space to screen space: screen = world*Zoom + Offset.
type Camera struct {
	Offset Vec     `yaml:"offset" json:"offset"`
	Zoom   float64 `yaml:"zoom" json:"zoom"`
}

// DefaultCamera has no offset and a 1:1 zoom.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// WorldToScreen converts a world position to screen pixels.
func (c Camera) WorldToScreen(p Vec) Vec {
	return Vec{X: p.X*c.Zoom + c.Offset.X, Y: p.Y*c.Zoom + c.Offset.Y}
}

// ScreenToWorld converts screen pixels to a world position.
// A non-positive zoom is treated as 1 to keep the result finite.
func (c Camera) ScreenToWorld(p Vec) Vec {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return Vec{X: (p.X - c.Offset.X) / z, Y: (p.Y - c.Offset.Y) / z}
}

// Pan moves the camera by a screen-space delta.
func (c Camera) Pan(delta Vec) Camera {
	c.Offset = c.Offset.Add(delta)
	return c
}

// ZoomAt changes the zoom while keeping the world point under the screen
// position anchor fixed on screen.
func (c Camera) ZoomAt(anchor Vec, zoom float64) Camera {
	world := c.ScreenToWorld(anchor)
	c.Zoom = zoom
	c.Offset = Vec{X: anchor.X - world.X*zoom, Y: anchor.Y - world.Y*zoom}
	return c
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
