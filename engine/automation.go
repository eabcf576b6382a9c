package engine

import (
	"fmt"

	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/bloodmagesoftware/motoed/tool"
)

// The methods below are the actuation surface non-pointer actors use. Each
// is an independent edit with the same effect as the matching gesture.
// They must run on the owning goroutine; use Do from elsewhere.

// AppleSpec describes an apple to add. A zero Animation means 1.
type AppleSpec struct {
	Position  level.Position `json:"position"`
	Animation int            `json:"animation,omitempty"`
	Gravity   level.Gravity  `json:"gravity,omitempty"`
}

// PolygonSpec describes a polygon to add.
type PolygonSpec struct {
	Vertices []level.Position `json:"vertices"`
	Grass    bool             `json:"grass,omitempty"`
}

func checkFinite(what string, ps ...level.Position) error {
	for _, p := range ps {
		if !p.IsFinite() {
			return fmt.Errorf("%s: position %v is not finite", what, p)
		}
	}
	return nil
}

// AddApple adds one apple and returns its id.
func (e *Engine) AddApple(pos level.Position, animation int, gravity level.Gravity) (level.ObjectID, error) {
	ids, err := e.AddApples([]AppleSpec{{Position: pos, Animation: animation, Gravity: gravity}})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddApples adds all apples as one undo step. Nothing is added when any
// position is invalid.
func (e *Engine) AddApples(apples []AppleSpec) ([]level.ObjectID, error) {
	for i, a := range apples {
		if err := checkFinite(fmt.Sprintf("apple %d", i), a.Position); err != nil {
			return nil, err
		}
		if a.Gravity < level.GravityNone || a.Gravity > level.GravityRight {
			return nil, fmt.Errorf("apple %d: unknown gravity %d", i, a.Gravity)
		}
	}
	ids := make([]level.ObjectID, 0, len(apples))
	e.step(func() {
		for _, a := range apples {
			ids = append(ids, e.store.AddApple(a.Position, a.Animation, a.Gravity))
		}
	})
	return ids, nil
}

func (e *Engine) AddKillers(ps []level.Position) ([]level.ObjectID, error) {
	if err := checkFinite("killer", ps...); err != nil {
		return nil, err
	}
	ids := make([]level.ObjectID, 0, len(ps))
	e.step(func() {
		for _, p := range ps {
			ids = append(ids, e.store.AddKiller(p))
		}
	})
	return ids, nil
}

func (e *Engine) AddFlowers(ps []level.Position) ([]level.ObjectID, error) {
	if err := checkFinite("flower", ps...); err != nil {
		return nil, err
	}
	ids := make([]level.ObjectID, 0, len(ps))
	e.step(func() {
		for _, p := range ps {
			ids = append(ids, e.store.AddFlower(p))
		}
	})
	return ids, nil
}

// MoveStart moves the start position. Moving it to where it already is
// changes nothing.
func (e *Engine) MoveStart(pos level.Position) error {
	if err := checkFinite("start", pos); err != nil {
		return err
	}
	e.step(func() { e.store.SetStart(pos) })
	return nil
}

// AddPolygons adds all polygons as one undo step. Every polygon needs at
// least 3 finite vertices; nothing is added otherwise.
func (e *Engine) AddPolygons(polys []PolygonSpec) ([]level.PolygonID, error) {
	for i, p := range polys {
		if len(p.Vertices) < 3 {
			return nil, fmt.Errorf("polygon %d: needs at least 3 vertices, got %d", i, len(p.Vertices))
		}
		if err := checkFinite(fmt.Sprintf("polygon %d", i), p.Vertices...); err != nil {
			return nil, err
		}
	}
	ids := make([]level.PolygonID, 0, len(polys))
	e.step(func() {
		for _, p := range polys {
			ids = append(ids, e.store.AddPolygon(p.Vertices, p.Grass))
		}
	})
	return ids, nil
}

func (e *Engine) SetLevelName(name string) {
	e.step(func() { e.store.SetLevelName(name) })
}

// step applies fn as its own undo step, never merged with an edit made
// just before or after it.
func (e *Engine) step(fn func()) {
	e.store.BreakHistory()
	e.store.Batch(fn)
	e.store.BreakHistory()
}

func (e *Engine) Undo() bool { return e.store.Undo() }
func (e *Engine) Redo() bool { return e.store.Redo() }

// Summary reports the aggregate shape of the current level.
func (e *Engine) Summary() levelio.Summary {
	return levelio.Summarize(e.store.Level())
}

// Import decodes data and replaces the level with it. On error the editor
// state is left untouched. A successful import clears every tool's scratch
// state and frames the new level on the next frame.
func (e *Engine) Import(data []byte) error {
	lvl, err := levelio.Decode(data)
	if err != nil {
		e.log.Printf("import failed: %v", err)
		return fmt.Errorf("importing level: %w", err)
	}
	e.LoadLevel(lvl)
	return nil
}

// LoadLevel replaces the level with lvl, which the engine takes ownership
// of.
func (e *Engine) LoadLevel(lvl *level.Level) {
	e.step(func() {
		for _, t := range e.tools {
			if c, ok := t.(tool.Clearer); ok {
				c.Clear()
			}
		}
		e.store.ReplaceLevel(lvl)
	})
	e.RequestFitToView()
}

// Export serializes the current level. It fails with levelio.ErrNoPolygons
// before serializing when there is no terrain.
func (e *Engine) Export() ([]byte, error) {
	data, err := levelio.Encode(e.store.Level())
	if err != nil {
		return nil, fmt.Errorf("exporting level: %w", err)
	}
	return data, nil
}
