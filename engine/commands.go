package engine

import (
	"context"
	"errors"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
)

// Command is work queued for the goroutine that owns the engine.
type Command interface {
	apply(e *Engine)
}

// FitToView asks the engine to frame all polygons on the next frame.
type FitToView struct{}

func (FitToView) apply(e *Engine) { e.FitToView() }

// Func runs arbitrary code on the owning goroutine.
type Func func(e *Engine)

func (f Func) apply(e *Engine) { f(e) }

// Post queues cmd. It is safe to call from any goroutine and never blocks.
func (e *Engine) Post(cmd Command) {
	e.mu.Lock()
	e.queue = append(e.queue, cmd)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
	if e.opts.Wake != nil {
		e.opts.Wake()
	}
}

// Drain runs every queued command in order. Frame calls it first; a
// frontend without frames uses Serve.
func (e *Engine) Drain() int {
	e.mu.Lock()
	queue := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, cmd := range queue {
		cmd.apply(e)
	}
	return len(queue)
}

// Do runs fn on the owning goroutine and waits for its result.
func (e *Engine) Do(ctx context.Context, fn func(e *Engine) error) error {
	done := make(chan error, 1)
	e.Post(Func(func(e *Engine) {
		done <- fn(e)
	}))
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Serve drains the command queue until ctx is cancelled. It makes the
// calling goroutine the engine's owner; do not combine it with Frame.
func (e *Engine) Serve(ctx context.Context) error {
	for {
		e.Drain()
		select {
		case <-ctx.Done():
			e.Drain()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-e.wake:
		}
	}
}

// RequestFitToView queues a fit-to-view for the next frame.
func (e *Engine) RequestFitToView() {
	e.Post(FitToView{})
}

// FitToView frames the bounding box of all polygon vertices plus padding
// within FitFraction of the canvas. Objects are ignored. Without polygons
// the default level rectangle is centered at zoom 1.
func (e *Engine) FitToView() {
	size := e.size
	lvl := e.store.Level()

	bounds, ok := geom.Bounds(lvl.Rings())
	if !ok {
		def := geom.Rect{Max: geom.Vec{X: level.DefaultWidth, Y: level.DefaultHeight}}
		e.store.SetCamera(geom.Camera{
			Offset: size.Mul(0.5).Sub(def.Center()),
			Zoom:   e.store.ClampZoom(1),
		})
		return
	}

	b := bounds.Expand(e.opts.FitPadding)
	_, maxZoom := e.store.ZoomLimits()
	zoom := maxZoom
	if b.Width() > 0 {
		zoom = min(zoom, size.X*e.opts.FitFraction/b.Width())
	}
	if b.Height() > 0 {
		zoom = min(zoom, size.Y*e.opts.FitFraction/b.Height())
	}
	zoom = e.store.ClampZoom(zoom)
	e.store.SetCamera(geom.Camera{
		Offset: size.Mul(0.5).Sub(b.Center().Mul(zoom)),
		Zoom:   zoom,
	})
}
