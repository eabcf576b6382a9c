// Package gioview is the desktop frontend: it lays out a toolbar and the
// level canvas with Gio, feeds Gio input to the engine and draws each
// engine frame through Gio ops.
package gioview

import (
	"image"
	"image/color"
	"log"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/input"
)

type Options struct {
	// Title is shown in the toolbar, usually the level file name.
	Title string
	// Save writes the level; it is called by the save button and Ctrl+S.
	Save   func() error
	Logger *log.Logger
}

// View owns the widgets of one editor window. It must only be used from the
// window's event goroutine, which is also the engine's owner.
type View struct {
	engine *engine.Engine
	theme  *material.Theme
	opts   Options
	log    *log.Logger

	saveButton  widget.Clickable
	saveIcon    *widget.Icon
	toolButtons []widget.Clickable

	buttons pointer.Buttons
	images  map[image.Image]paint.ImageOp
}

func New(e *engine.Engine, theme *material.Theme, opts Options) *View {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	saveIcon, err := widget.NewIcon(icons.ContentSave)
	if err != nil {
		opts.Logger.Printf("Failed to load save icon: %v", err)
	}
	return &View{
		engine:      e,
		theme:       theme,
		opts:        opts,
		log:         opts.Logger,
		saveIcon:    saveIcon,
		toolButtons: make([]widget.Clickable, len(e.Tools())),
		images:      make(map[image.Image]paint.ImageOp),
	}
}

// Save runs the save callback and marks the level clean on success.
func (v *View) Save() {
	if v.opts.Save == nil {
		return
	}
	if err := v.opts.Save(); err != nil {
		v.log.Printf("Failed to save level: %v", err)
		return
	}
	v.engine.Store().MarkClean()
	v.log.Printf("Level saved: %s", v.opts.Title)
}

// Layout renders the toolbar and the canvas and requests the next frame.
func (v *View) Layout(gtx layout.Context) layout.Dimensions {
	event.Op(gtx.Ops, v)
	for {
		ev, ok := gtx.Event(key.Filter{Name: "S", Required: key.ModShortcut})
		if !ok {
			break
		}
		if ev, ok := ev.(key.Event); ok && ev.State == key.Press {
			v.Save()
		}
	}

	dims := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutTopBar),
		layout.Flexed(1, v.layoutCanvas),
	)
	gtx.Execute(op.InvalidateCmd{})
	return dims
}

func (v *View) layoutTopBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(40))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	s := v.engine.Store()
	tools := v.engine.Tools()
	for i := range tools {
		if v.toolButtons[i].Clicked(gtx) {
			s.ActivateTool(tools[i].ID())
		}
	}
	if v.saveButton.Clicked(gtx) {
		v.Save()
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
			paint.ColorOp{Color: color.NRGBA{R: 40, G: 40, B: 40, A: 255}}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			children := []layout.FlexChild{
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						title := v.opts.Title
						if name := s.Level().Name; name != "" {
							title += " · " + name
						}
						if s.Dirty() {
							title += " *"
						}
						label := material.Body1(v.theme, title)
						label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						return label.Layout(gtx)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if v.saveIcon == nil {
						return layout.Dimensions{}
					}
					btn := material.IconButton(v.theme, &v.saveButton, v.saveIcon, "Save level")
					if s.Dirty() {
						btn.Background = color.NRGBA{R: 200, G: 120, B: 60, A: 255}
					} else {
						btn.Background = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
					}
					btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
					btn.Size = unit.Dp(20)
					btn.Inset = layout.UniformInset(unit.Dp(6))
					return btn.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			}
			active := s.ActiveToolID()
			for i, t := range tools {
				label := t.Name() + " (" + t.Shortcut() + ")"
				selected := t.ID() == active
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						button := material.Button(v.theme, &v.toolButtons[i], label)
						if selected {
							button.Background = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
						} else {
							button.Background = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
						}
						button.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						button.TextSize = unit.Sp(12)
						button.Inset = layout.Inset{Top: 4, Bottom: 4, Left: 8, Right: 8}
						return button.Layout(gtx)
					})
				}))
			}
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
		},
	)
}

func (v *View) layoutCanvas(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()

	v.handleCanvasInput(gtx)

	now := gtx.Now
	if now.IsZero() {
		now = time.Now()
	}
	c := newCanvas(gtx, v.theme, v.images)
	v.engine.Frame(c, now)
	c.applyCursor()
	return layout.Dimensions{Size: size}
}

// handleCanvasInput registers the canvas as an input target and forwards
// pending events to the engine.
func (v *View) handleCanvasInput(gtx layout.Context) {
	tag := &v.buttons
	event.Op(gtx.Ops, tag)

	for {
		ev, ok := gtx.Event(
			pointer.Filter{
				Target:  tag,
				Kinds:   pointer.Press | pointer.Release | pointer.Move | pointer.Drag | pointer.Scroll | pointer.Enter | pointer.Leave | pointer.Cancel,
				ScrollX: pointer.ScrollRange{Min: -1000, Max: 1000},
				ScrollY: pointer.ScrollRange{Min: -1000, Max: 1000},
			},
			key.FocusFilter{Target: tag},
			key.Filter{
				Focus:    tag,
				Optional: key.ModShift | key.ModCtrl | key.ModAlt | key.ModCommand | key.ModSuper,
			},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			if ev.Kind == pointer.Press {
				gtx.Execute(key.FocusCmd{Tag: tag})
			}
			in, ok := translatePointer(ev, v.buttons)
			v.buttons = ev.Buttons
			if ok {
				v.engine.HandleEvent(in)
			}
		case key.Event:
			if ev.State != key.Press {
				continue
			}
			if name, ok := translateKey(ev.Name); ok {
				v.engine.HandleEvent(input.KeyEvent{Key: name, Mods: translateMods(ev.Modifiers)})
			}
		}
	}
}
