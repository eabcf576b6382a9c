// Package script runs tengo scripts against an editing session. A script
// sees these functions:
//
//	add_apple(x, y[, animation, gravity])  -> id
//	add_killer(x, y)                       -> id
//	add_flower(x, y)                       -> id
//	move_start(x, y)
//	add_polygon(points[, grass])           -> id
//	set_name(name)
//	fit_to_view()
//	level_name()                           -> string
//	polygon_count()                        -> int
//
// points is an array of [x, y] pairs or {x: .., y: ..} maps. gravity is one
// of "none", "up", "down", "left" or "right".
package script

import (
	"context"
	"fmt"
	"os"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Modules are the tengo standard modules a script may import.
var Modules = []string{"math", "text", "times", "rand", "fmt", "json", "enum"}

// MaxAllocs bounds the objects a single run may allocate.
const MaxAllocs = 1 << 20

// Run compiles and runs src on e. It must be called on the goroutine that
// owns e (wrap it in e.Do from anywhere else). Everything the script changes
// is one undo step. A failing script keeps the edits made before the error.
func Run(ctx context.Context, e *engine.Engine, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(Modules...))
	s.SetMaxAllocs(MaxAllocs)
	for name, fn := range builtins(e) {
		if err := s.Add(name, fn); err != nil {
			return fmt.Errorf("registering %s: %w", name, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("compiling script: %w", err)
	}

	e.Store().BreakHistory()
	e.Store().Batch(func() {
		err = compiled.RunContext(ctx)
	})
	e.Store().BreakHistory()
	if err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// RunFile runs the script at path.
func RunFile(ctx context.Context, e *engine.Engine, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return Run(ctx, e, src)
}

func builtins(e *engine.Engine) map[string]*tengo.UserFunction {
	fns := map[string]tengo.CallableFunc{
		"add_apple": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 2 || len(args) > 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			pos, err := position("add_apple", args[0], args[1])
			if err != nil {
				return nil, err
			}
			animation := 1
			if len(args) > 2 {
				n, ok := tengo.ToInt(args[2])
				if !ok {
					return nil, typeError("add_apple", "third", "int", args[2])
				}
				animation = n
			}
			gravity := level.GravityNone
			if len(args) > 3 {
				name, ok := tengo.ToString(args[3])
				if !ok {
					return nil, typeError("add_apple", "fourth", "string", args[3])
				}
				if gravity, ok = level.ParseGravity(name); !ok {
					return nil, fmt.Errorf("add_apple: unknown gravity %q", name)
				}
			}
			id, err := e.AddApple(pos, animation, gravity)
			if err != nil {
				return nil, err
			}
			return &tengo.Int{Value: int64(id)}, nil
		},

		"add_killer": func(args ...tengo.Object) (tengo.Object, error) {
			return addObject("add_killer", e.AddKillers, args)
		},

		"add_flower": func(args ...tengo.Object) (tengo.Object, error) {
			return addObject("add_flower", e.AddFlowers, args)
		},

		"move_start": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			pos, err := position("move_start", args[0], args[1])
			if err != nil {
				return nil, err
			}
			if err := e.MoveStart(pos); err != nil {
				return nil, err
			}
			return tengo.UndefinedValue, nil
		},

		"add_polygon": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			vs, err := points(args[0])
			if err != nil {
				return nil, err
			}
			grass := false
			if len(args) > 1 {
				grass = !args[1].IsFalsy()
			}
			ids, err := e.AddPolygons([]engine.PolygonSpec{{Vertices: vs, Grass: grass}})
			if err != nil {
				return nil, err
			}
			return &tengo.Int{Value: int64(ids[0])}, nil
		},

		"set_name": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, typeError("set_name", "first", "string", args[0])
			}
			e.SetLevelName(name)
			return tengo.UndefinedValue, nil
		},

		"fit_to_view": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			e.FitToView()
			return tengo.UndefinedValue, nil
		},

		"level_name": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			return &tengo.String{Value: e.Store().Level().Name}, nil
		},

		"polygon_count": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			return &tengo.Int{Value: int64(len(e.Store().Level().Polygons))}, nil
		},
	}

	out := make(map[string]*tengo.UserFunction, len(fns))
	for name, fn := range fns {
		out[name] = &tengo.UserFunction{Name: name, Value: fn}
	}
	return out
}

func addObject(name string, add func([]level.Position) ([]level.ObjectID, error), args []tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	pos, err := position(name, args[0], args[1])
	if err != nil {
		return nil, err
	}
	ids, err := add([]level.Position{pos})
	if err != nil {
		return nil, err
	}
	return &tengo.Int{Value: int64(ids[0])}, nil
}

func typeError(fn, arg, expected string, found tengo.Object) error {
	return tengo.ErrInvalidArgumentType{
		Name:     fmt.Sprintf("%s %s", fn, arg),
		Expected: expected,
		Found:    found.TypeName(),
	}
}

func position(fn string, xo, yo tengo.Object) (level.Position, error) {
	x, ok := tengo.ToFloat64(xo)
	if !ok {
		return level.Position{}, typeError(fn, "x", "number", xo)
	}
	y, ok := tengo.ToFloat64(yo)
	if !ok {
		return level.Position{}, typeError(fn, "y", "number", yo)
	}
	return level.Position{X: x, Y: y}, nil
}

func points(o tengo.Object) ([]level.Position, error) {
	var items []tengo.Object
	switch v := o.(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return nil, typeError("add_polygon", "points", "array", o)
	}

	vs := make([]level.Position, 0, len(items))
	for i, item := range items {
		var xo, yo tengo.Object
		switch p := item.(type) {
		case *tengo.Array:
			if len(p.Value) == 2 {
				xo, yo = p.Value[0], p.Value[1]
			}
		case *tengo.ImmutableArray:
			if len(p.Value) == 2 {
				xo, yo = p.Value[0], p.Value[1]
			}
		case *tengo.Map:
			xo, yo = p.Value["x"], p.Value["y"]
		case *tengo.ImmutableMap:
			xo, yo = p.Value["x"], p.Value["y"]
		}
		if xo == nil || yo == nil {
			return nil, fmt.Errorf("add_polygon: point %d is not an [x, y] pair or {x, y} map", i)
		}
		pos, err := position(fmt.Sprintf("add_polygon point %d", i), xo, yo)
		if err != nil {
			return nil, err
		}
		vs = append(vs, pos)
	}
	return vs, nil
}
