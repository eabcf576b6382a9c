package engine

import (
	"math"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/tool"
)

func (e *Engine) context(screen geom.Vec, button input.Button, buttons input.Buttons, mods input.Modifiers) tool.EventContext {
	cam := e.store.Camera()
	return tool.EventContext{
		World:   cam.ScreenToWorld(screen),
		Screen:  screen,
		Button:  button,
		Buttons: buttons,
		Mods:    mods,
		Zoom:    cam.Zoom,
	}
}

// HandleEvent dispatches one input event. It reports whether the event was
// consumed by a tool or by a camera control.
func (e *Engine) HandleEvent(ev input.Event) bool {
	switch ev := ev.(type) {
	case input.PointerEvent:
		return e.handlePointer(ev)
	case input.WheelEvent:
		return e.handleWheel(ev)
	case input.KeyEvent:
		return e.handleKey(ev)
	}
	return false
}

func (e *Engine) handlePointer(ev input.PointerEvent) bool {
	e.buttons = ev.Buttons
	active := e.ActiveTool()
	ctx := e.context(ev.Position, ev.Button, ev.Buttons, ev.Mods)

	switch ev.Kind {
	case input.Press:
		e.mouseInside = true
		switch ev.Button {
		case input.ButtonMiddle:
			e.panning = true
			e.panLast = ev.Position
			return true
		case input.ButtonSecondary:
			if rc, ok := active.(tool.RightClicker); ok {
				return rc.OnRightClick(ctx)
			}
			return false
		}
		if pd, ok := active.(tool.PointerDowner); ok {
			return pd.OnPointerDown(ctx)
		}

	case input.Move:
		e.mouseInside = true
		if e.panning {
			delta := ev.Position.Sub(e.panLast).Mul(1 / e.opts.PanSpeed)
			e.panLast = ev.Position
			e.store.SetCamera(e.store.Camera().Pan(delta))
			e.mouse = e.store.Camera().ScreenToWorld(ev.Position)
			e.mouseScreen = ev.Position
			return true
		}
		if pm, ok := active.(tool.PointerMover); ok && pm.OnPointerMove(ctx) {
			return true
		}
		e.mouse = ctx.World
		e.mouseScreen = ev.Position

	case input.Release:
		if ev.Button == input.ButtonMiddle {
			if !e.panning {
				return false
			}
			e.panning = false
			return true
		}
		if ev.Button == input.ButtonSecondary {
			return false
		}
		if pu, ok := active.(tool.PointerUpper); ok {
			return pu.OnPointerUp(ctx)
		}

	case input.Leave:
		e.mouseInside = false

	case input.Enter:
		e.mouseInside = true
	}
	return false
}

func (e *Engine) handleWheel(ev input.WheelEvent) bool {
	cam := e.store.Camera()
	switch {
	case ev.Mods.Shortcut():
		factor := math.Pow(e.opts.WheelZoomStep, -ev.Delta.Y/100)
		e.zoomAt(ev.Position, cam.Zoom*factor)
	case ev.Mods.Contain(input.ModShift):
		dx := ev.Delta.X
		if dx == 0 {
			dx = ev.Delta.Y
		}
		e.store.SetCamera(cam.Pan(geom.Vec{X: -dx}))
	default:
		e.store.SetCamera(cam.Pan(geom.Vec{Y: -ev.Delta.Y}))
	}
	e.mouse = e.store.Camera().ScreenToWorld(e.mouseScreen)
	return true
}

// zoomAt applies a clamped zoom keeping the world point under anchor fixed.
func (e *Engine) zoomAt(anchor geom.Vec, zoom float64) {
	zoom = e.store.ClampZoom(zoom)
	e.store.SetCamera(e.store.Camera().ZoomAt(anchor, zoom))
}

func (e *Engine) handleKey(ev input.KeyEvent) bool {
	ctx := e.context(e.mouseScreen, input.ButtonNone, e.buttons, ev.Mods)
	if kd, ok := e.ActiveTool().(tool.KeyDowner); ok && kd.OnKeyDown(ev, ctx) {
		return true
	}

	cam := e.store.Camera()
	if ev.Mods.Shortcut() {
		switch {
		case ev.Is("z") && ev.Mods.Contain(input.ModShift), ev.Is("y"):
			e.store.Redo()
			return true
		case ev.Is("z"):
			e.store.Undo()
			return true
		}
		return false
	}

	// one press moves ArrowPanStep screen pixels, ArrowPanStep/zoom world units
	step := e.opts.ArrowPanStep
	switch {
	case ev.Is(input.KeyArrowLeft):
		e.store.SetCamera(cam.Pan(geom.Vec{X: step}))
	case ev.Is(input.KeyArrowRight):
		e.store.SetCamera(cam.Pan(geom.Vec{X: -step}))
	case ev.Is(input.KeyArrowUp):
		e.store.SetCamera(cam.Pan(geom.Vec{Y: step}))
	case ev.Is(input.KeyArrowDown):
		e.store.SetCamera(cam.Pan(geom.Vec{Y: -step}))
	case ev.Is("+"), ev.Is("="):
		e.zoomAt(e.size.Mul(0.5), cam.Zoom*e.opts.ZoomStep)
	case ev.Is("-"):
		e.zoomAt(e.size.Mul(0.5), cam.Zoom/e.opts.ZoomStep)
	case ev.Is(input.KeyHome):
		e.FitToView()
	case ev.Is("d"):
		e.store.ToggleDebug()
	default:
		c, ok := ev.Letter()
		if !ok || ev.Mods != 0 && ev.Mods != input.ModShift {
			return false
		}
		for _, t := range e.tools {
			if t.Shortcut() == string(c) {
				return e.store.ActivateTool(t.ID())
			}
		}
		return false
	}
	return true
}
