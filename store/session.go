package store

import (
	"fmt"
	"maps"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
	"gopkg.in/yaml.v3"
)

// State is the plain, serializable form of a session.
type State struct {
	Level      *level.Level         `yaml:"level"`
	Camera     geom.Camera          `yaml:"camera"`
	ActiveTool ToolID               `yaml:"active_tool"`
	ToolState  map[ToolID]yaml.Node `yaml:"tool_state,omitempty"`
	Flags      Flags                `yaml:"flags"`
}

// Snapshot captures the session so it can be written to disk.
func (s *Store) Snapshot() (State, error) {
	st := State{
		Level:      s.level.Clone(),
		Camera:     s.camera,
		ActiveTool: s.activeTool,
		ToolState:  make(map[ToolID]yaml.Node, len(s.toolState)),
		Flags:      s.flags,
	}
	for id, v := range s.toolState {
		var n yaml.Node
		if node, ok := v.(*yaml.Node); ok {
			n = *node
		} else if err := n.Encode(v); err != nil {
			return State{}, fmt.Errorf("encoding tool state %q: %w", id, err)
		}
		st.ToolState[id] = n
	}
	return st, nil
}

// Restore loads a session captured by Snapshot. Tool state stays encoded
// until a tool reads it through ToolState. The active tool is switched
// without lifecycle hooks when it is registered, and kept otherwise.
// History starts over from the restored state.
func (s *Store) Restore(st State) {
	if st.Level != nil {
		s.level = st.Level.Clone()
	}
	s.SetCamera(st.Camera)
	s.flags = st.Flags
	s.toolState = make(map[ToolID]any, len(st.ToolState))
	for id, n := range st.ToolState {
		n := n
		s.toolState[id] = &n
	}
	if s.tool(st.ActiveTool) != nil {
		s.activeTool = st.ActiveTool
	}
	s.polygonsVersion++
	s.history.Reset(s.entry())
	s.notify()
}

// ToolStates returns a copy of the raw tool state map.
func (s *Store) ToolStates() map[ToolID]any {
	return maps.Clone(s.toolState)
}
