package store

import (
	"github.com/bloodmagesoftware/motoed/geom"
)

func (s *Store) Camera() geom.Camera {
	return s.camera
}

// ZoomLimits returns the zoom clamp range.
func (s *Store) ZoomLimits() (lo, hi float64) {
	return s.opts.MinZoom, s.opts.MaxZoom
}

// ClampZoom limits z to the configured zoom range.
func (s *Store) ClampZoom(z float64) float64 {
	return geom.Clamp(z, s.opts.MinZoom, s.opts.MaxZoom)
}

// SetCamera replaces the camera. The zoom is clamped; a non-finite offset is
// rejected.
func (s *Store) SetCamera(c geom.Camera) {
	if !c.Offset.IsFinite() {
		s.log.Printf("set camera: non-finite offset %v ignored", c.Offset)
		return
	}
	c.Zoom = s.ClampZoom(c.Zoom)
	if c == s.camera {
		return
	}
	s.camera = c
	s.notify()
}

// SetZoom changes only the zoom, clamped to the configured range.
func (s *Store) SetZoom(z float64) {
	c := s.camera
	c.Zoom = z
	s.SetCamera(c)
}
