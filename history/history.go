// Package history keeps an undo/redo log of immutable snapshots.
//
// Snapshots that are structurally equal to the current one are dropped, and
// snapshots recorded in quick succession coalesce into a single step so a
// drag gesture becomes one undo entry holding its final state.
package history

import (
	"reflect"
	"time"
)

// History is an undo/redo log over values of type T. Values must be treated
// as immutable once recorded.
type History[T any] struct {
	past    []T
	present T
	future  []T

	throttle time.Duration
	limit    int
	last     time.Time
}

// New returns a history whose present is initial. Records closer than
// throttle to the previous record coalesce; limit bounds the undo depth
// (0 means unbounded).
func New[T any](initial T, throttle time.Duration, limit int) *History[T] {
	return &History[T]{
		present:  initial,
		throttle: throttle,
		limit:    limit,
	}
}

// Present returns the current snapshot.
func (h *History[T]) Present() T {
	return h.present
}

// Record makes v the present snapshot. It reports whether a new undo step
// was created; false means v was a duplicate or was merged into the burst
// that is still open.
func (h *History[T]) Record(v T, now time.Time) bool {
	if reflect.DeepEqual(v, h.present) {
		return false
	}

	coalesce := !h.last.IsZero() && h.throttle > 0 && now.Sub(h.last) < h.throttle
	h.last = now
	h.future = nil

	if coalesce {
		h.present = v
		return false
	}

	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = v
	return true
}

// Undo steps back one snapshot and returns it.
func (h *History[T]) Undo() (T, bool) {
	if len(h.past) == 0 {
		var zero T
		return zero, false
	}
	h.future = append(h.future, h.present)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.last = time.Time{}
	return h.present, true
}

// Redo steps forward one snapshot and returns it.
func (h *History[T]) Redo() (T, bool) {
	if len(h.future) == 0 {
		var zero T
		return zero, false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.last = time.Time{}
	return h.present, true
}

// Reset drops every step and makes v the present.
func (h *History[T]) Reset(v T) {
	h.past = nil
	h.future = nil
	h.present = v
	h.last = time.Time{}
}

// Break closes the open burst so the next Record starts a new step.
func (h *History[T]) Break() {
	h.last = time.Time{}
}

func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

// Len returns the number of undo steps available.
func (h *History[T]) Len() int {
	return len(h.past)
}
