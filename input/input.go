// Package input defines device-neutral input events. Frontends translate
// their native events into these; the engine and tools consume only these.
package input

import (
	"strings"

	"github.com/bloodmagesoftware/motoed/geom"
)

// Button is a single pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// Buttons is the set of pointer buttons currently held.
type Buttons uint8

const (
	HeldPrimary Buttons = 1 << iota
	HeldSecondary
	HeldMiddle
)

// Contain reports whether all of b2 are held.
func (b Buttons) Contain(b2 Buttons) bool {
	return b&b2 == b2
}

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	// ModMeta is the Command key on macOS.
	ModMeta
)

// Contain reports whether all of m2 are held.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// Shortcut reports whether the platform shortcut modifier (Ctrl or Meta) is held.
func (m Modifiers) Shortcut() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// Event is one of PointerEvent, WheelEvent or KeyEvent.
type Event interface {
	isEvent()
}

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	Press PointerKind = iota
	Move
	Release
	// Leave is sent when the pointer leaves the canvas.
	Leave
	// Enter is sent when the pointer enters the canvas.
	Enter
)

func (k PointerKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Leave:
		return "leave"
	case Enter:
		return "enter"
	}
	return "unknown"
}

// PointerEvent is a pointer press, move or release at a screen position.
type PointerEvent struct {
	Kind     PointerKind
	Position geom.Vec
	// Button changed state in a Press or Release.
	Button  Button
	Buttons Buttons
	Mods    Modifiers
}

// WheelEvent is a scroll with deltas in pixel-like units, positive Y down.
type WheelEvent struct {
	Position geom.Vec
	Delta    geom.Vec
	Mods     Modifiers
}

// KeyEvent is a key press. Key names follow the web convention: "Escape",
// "Enter", "Space", "Delete", "Backspace", "ArrowLeft", "Home", "+", "a".
type KeyEvent struct {
	Key  string
	Mods Modifiers
}

func (PointerEvent) isEvent() {}
func (WheelEvent) isEvent()   {}
func (KeyEvent) isEvent()     {}

// Named keys.
const (
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeySpace      = "Space"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
)

// Is compares a key name case-insensitively for single letters and exactly
// for everything else.
func (e KeyEvent) Is(name string) bool {
	if len(e.Key) == 1 && len(name) == 1 {
		return strings.EqualFold(e.Key, name)
	}
	return e.Key == name
}

// Letter returns the lowercase letter of a single-letter key.
func (e KeyEvent) Letter() (byte, bool) {
	if len(e.Key) != 1 {
		return 0, false
	}
	c := e.Key[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return c, true
}
