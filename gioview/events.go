package gioview

import (
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/input"
)

var keyNames = map[key.Name]string{
	key.NameEscape:         input.KeyEscape,
	key.NameReturn:         input.KeyEnter,
	key.NameEnter:          input.KeyEnter,
	key.NameSpace:          input.KeySpace,
	key.NameDeleteForward:  input.KeyDelete,
	key.NameDeleteBackward: input.KeyBackspace,
	key.NameLeftArrow:      input.KeyArrowLeft,
	key.NameRightArrow:     input.KeyArrowRight,
	key.NameUpArrow:        input.KeyArrowUp,
	key.NameDownArrow:      input.KeyArrowDown,
	key.NameHome:           input.KeyHome,
}

// translateKey maps a Gio key name to the input package's name. Letters
// come out lowercase.
func translateKey(name key.Name) (string, bool) {
	if n, ok := keyNames[name]; ok {
		return n, true
	}
	if len(name) != 1 {
		return "", false
	}
	c := name[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return string(c), true
}

func translateMods(m key.Modifiers) input.Modifiers {
	var out input.Modifiers
	if m.Contain(key.ModShift) {
		out |= input.ModShift
	}
	if m.Contain(key.ModCtrl) {
		out |= input.ModCtrl
	}
	if m.Contain(key.ModAlt) {
		out |= input.ModAlt
	}
	if m.Contain(key.ModCommand) || m.Contain(key.ModSuper) {
		out |= input.ModMeta
	}
	return out
}

func translateButtons(b pointer.Buttons) input.Buttons {
	var out input.Buttons
	if b.Contain(pointer.ButtonPrimary) {
		out |= input.HeldPrimary
	}
	if b.Contain(pointer.ButtonSecondary) {
		out |= input.HeldSecondary
	}
	if b.Contain(pointer.ButtonTertiary) {
		out |= input.HeldMiddle
	}
	return out
}

// changedButton returns the one button that differs between prev and now.
func changedButton(prev, now pointer.Buttons) input.Button {
	diff := prev ^ now
	switch {
	case diff.Contain(pointer.ButtonPrimary):
		return input.ButtonPrimary
	case diff.Contain(pointer.ButtonTertiary):
		return input.ButtonMiddle
	case diff.Contain(pointer.ButtonSecondary):
		return input.ButtonSecondary
	}
	return input.ButtonNone
}

// translatePointer converts one Gio pointer event. prev is the button state
// before ev; ok is false for events the engine has no use for.
func translatePointer(ev pointer.Event, prev pointer.Buttons) (input.Event, bool) {
	pos := geom.Vec{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	mods := translateMods(ev.Modifiers)
	pe := input.PointerEvent{
		Position: pos,
		Buttons:  translateButtons(ev.Buttons),
		Mods:     mods,
	}
	switch ev.Kind {
	case pointer.Press:
		pe.Kind = input.Press
		pe.Button = changedButton(prev, ev.Buttons)
	case pointer.Release:
		pe.Kind = input.Release
		pe.Button = changedButton(prev, ev.Buttons)
	case pointer.Move, pointer.Drag:
		pe.Kind = input.Move
	case pointer.Enter:
		pe.Kind = input.Enter
	case pointer.Leave, pointer.Cancel:
		pe.Kind = input.Leave
	case pointer.Scroll:
		return input.WheelEvent{
			Position: pos,
			Delta:    geom.Vec{X: float64(ev.Scroll.X), Y: float64(ev.Scroll.Y)},
			Mods:     mods,
		}, true
	default:
		return nil, false
	}
	return pe, true
}
