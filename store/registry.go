package store

import (
	"gopkg.in/yaml.v3"
)

// ToolID identifies a tool. IDs are stable and used in persisted sessions.
type ToolID string

// WidgetID identifies a side panel widget.
type WidgetID string

// Tool is what the store needs to know about a tool to run the activation
// protocol. Event handling lives in the tool package.
type Tool interface {
	ID() ToolID
}

// Widget is a panel that can be activated like a tool.
type Widget interface {
	WidgetID() WidgetID
}

// Activator is implemented by tools and widgets that initialize state when
// they become active.
type Activator interface {
	OnActivate(s *Store)
}

// Deactivator is implemented by tools and widgets that must clean up when
// another one takes over.
type Deactivator interface {
	OnDeactivate(s *Store)
}

// RegisterTool adds t to the registry. The first registered tool becomes
// active immediately.
func (s *Store) RegisterTool(t Tool) {
	for _, existing := range s.tools {
		if existing.ID() == t.ID() {
			s.log.Printf("register tool: duplicate id %q ignored", t.ID())
			return
		}
	}
	s.tools = append(s.tools, t)
	if len(s.tools) == 1 {
		s.activeTool = t.ID()
		if a, ok := t.(Activator); ok {
			a.OnActivate(s)
		}
		// the initial activation is not an undoable step
		s.history.Reset(s.entry())
	}
}

// Tools returns the registered tools in registration order.
func (s *Store) Tools() []Tool {
	return append([]Tool(nil), s.tools...)
}

func (s *Store) ActiveToolID() ToolID {
	return s.activeTool
}

// ActiveTool returns the active tool, or nil before any tool is registered.
func (s *Store) ActiveTool() Tool {
	return s.tool(s.activeTool)
}

func (s *Store) tool(id ToolID) Tool {
	for _, t := range s.tools {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// ActivateTool switches the active tool. An unknown id is logged and leaves
// everything unchanged. Otherwise the current tool's OnDeactivate runs, the
// active id changes, then the new tool's OnActivate runs. Activating the
// already active tool does nothing.
func (s *Store) ActivateTool(id ToolID) bool {
	next := s.tool(id)
	if next == nil {
		s.log.Printf("activate tool: unknown tool %q", id)
		return false
	}
	if id == s.activeTool {
		return true
	}
	s.Batch(func() {
		if d, ok := s.ActiveTool().(Deactivator); ok {
			d.OnDeactivate(s)
		}
		s.activeTool = id
		if a, ok := next.(Activator); ok {
			a.OnActivate(s)
		}
		s.touched()
	})
	return true
}

// RegisterWidget adds w to the widget registry. The first registered widget
// becomes active immediately.
func (s *Store) RegisterWidget(w Widget) {
	for _, existing := range s.widgets {
		if existing.WidgetID() == w.WidgetID() {
			s.log.Printf("register widget: duplicate id %q ignored", w.WidgetID())
			return
		}
	}
	s.widgets = append(s.widgets, w)
	if len(s.widgets) == 1 {
		s.activeWidget = w.WidgetID()
		if a, ok := w.(Activator); ok {
			a.OnActivate(s)
		}
	}
}

func (s *Store) Widgets() []Widget {
	return append([]Widget(nil), s.widgets...)
}

func (s *Store) ActiveWidgetID() WidgetID {
	return s.activeWidget
}

func (s *Store) widget(id WidgetID) Widget {
	for _, w := range s.widgets {
		if w.WidgetID() == id {
			return w
		}
	}
	return nil
}

// ActivateWidget follows the same protocol as ActivateTool.
func (s *Store) ActivateWidget(id WidgetID) bool {
	next := s.widget(id)
	if next == nil {
		s.log.Printf("activate widget: unknown widget %q", id)
		return false
	}
	if id == s.activeWidget {
		return true
	}
	if d, ok := s.widget(s.activeWidget).(Deactivator); ok {
		d.OnDeactivate(s)
	}
	s.activeWidget = id
	if a, ok := next.(Activator); ok {
		a.OnActivate(s)
	}
	s.notify()
	return true
}

// ToolState returns the scratch state stored for tool id as a T. State
// restored from a session file is decoded into T on first access.
func ToolState[T any](s *Store, id ToolID) (T, bool) {
	var zero T
	v, ok := s.toolState[id]
	if !ok {
		return zero, false
	}
	switch v := v.(type) {
	case T:
		return v, true
	case *yaml.Node:
		var t T
		if err := v.Decode(&t); err != nil {
			s.log.Printf("tool state %q: %v", id, err)
			return zero, false
		}
		s.toolState[id] = t
		return t, true
	}
	return zero, false
}

// Settler is implemented by tool states that carry an in-progress pointer
// gesture. Undo and redo store Settle's result instead of the state itself.
type Settler interface {
	Settle() any
}

// SetToolState replaces the scratch state of tool id. Values are snapshots:
// callers build a new value instead of mutating one they stored before.
func (s *Store) SetToolState(id ToolID, v any) {
	s.toolState[id] = v
	s.touched()
}

// ClearToolState drops the scratch state of tool id.
func (s *Store) ClearToolState(id ToolID) {
	if _, ok := s.toolState[id]; !ok {
		return
	}
	delete(s.toolState, id)
	s.touched()
}
