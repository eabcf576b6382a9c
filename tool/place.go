package tool

import (
	"slices"

	"github.com/bloodmagesoftware/motoed/input"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/render"
	"github.com/bloodmagesoftware/motoed/store"
)

// AppleSettings are the defaults new apples are placed with.
type AppleSettings struct {
	Animation int           `yaml:"animation"`
	Gravity   level.Gravity `yaml:"gravity"`
}

// PictureSettings hold the sprite the picture tool places.
type PictureSettings struct {
	Name string `yaml:"name"`
}

// Place puts one object at the cursor per click.
type Place struct {
	store    *store.Store
	id       store.ToolID
	name     string
	shortcut string
	kind     level.ObjectKind
	pictures []string
}

func NewApple(s *store.Store) *Place {
	return &Place{store: s, id: AppleID, name: "Apple", shortcut: "a", kind: level.KindApple}
}

func NewKiller(s *store.Store) *Place {
	return &Place{store: s, id: KillerID, name: "Killer", shortcut: "k", kind: level.KindKiller}
}

func NewFlower(s *store.Store) *Place {
	return &Place{store: s, id: FlowerID, name: "Flower", shortcut: "f", kind: level.KindFlower}
}

func NewPicture(s *store.Store, cfg Config) *Place {
	cfg = cfg.withDefaults()
	return &Place{store: s, id: PictureID, name: "Picture", shortcut: "p", kind: level.KindPicture, pictures: cfg.PictureNames}
}

func (t *Place) ID() store.ToolID      { return t.id }
func (t *Place) Name() string          { return t.name }
func (t *Place) Shortcut() string      { return t.shortcut }
func (t *Place) Cursor() render.Cursor { return render.CursorCrosshair }

// Kind returns the object kind this tool places.
func (t *Place) Kind() level.ObjectKind {
	return t.kind
}

// OnActivate initializes the defaults on first use.
func (t *Place) OnActivate(s *store.Store) {
	switch t.kind {
	case level.KindApple:
		if _, ok := store.ToolState[AppleSettings](s, t.id); !ok {
			s.SetToolState(t.id, AppleSettings{Animation: 1})
		}
	case level.KindPicture:
		if _, ok := store.ToolState[PictureSettings](s, t.id); !ok && len(t.pictures) > 0 {
			s.SetToolState(t.id, PictureSettings{Name: t.pictures[0]})
		}
	}
}

func (t *Place) AppleSettings() AppleSettings {
	st, ok := store.ToolState[AppleSettings](t.store, t.id)
	if !ok {
		return AppleSettings{Animation: 1}
	}
	return st
}

func (t *Place) PictureSettings() PictureSettings {
	st, ok := store.ToolState[PictureSettings](t.store, t.id)
	if !ok && len(t.pictures) > 0 {
		return PictureSettings{Name: t.pictures[0]}
	}
	return st
}

// OnPointerDown places an object and always consumes the event.
func (t *Place) OnPointerDown(ctx EventContext) bool {
	if ctx.Button != input.ButtonPrimary {
		return true
	}
	switch t.kind {
	case level.KindApple:
		a := t.AppleSettings()
		t.store.AddApple(ctx.World, a.Animation, a.Gravity)
	case level.KindKiller:
		t.store.AddKiller(ctx.World)
	case level.KindFlower:
		t.store.AddFlower(ctx.World)
	case level.KindPicture:
		t.store.AddPicture(t.PictureSettings().Name, ctx.World)
	}
	return true
}

func (t *Place) OnKeyDown(ev input.KeyEvent, ctx EventContext) bool {
	switch t.kind {
	case level.KindApple:
		a := t.AppleSettings()
		switch {
		case ev.Is("1"):
			a.Animation = 1
		case ev.Is("2"):
			a.Animation = 2
		case ev.Is("0"):
			a.Gravity = level.GravityNone
		case ev.Mods.Contain(input.ModAlt) && ev.Is(input.KeyArrowUp):
			a.Gravity = level.GravityUp
		case ev.Mods.Contain(input.ModAlt) && ev.Is(input.KeyArrowDown):
			a.Gravity = level.GravityDown
		case ev.Mods.Contain(input.ModAlt) && ev.Is(input.KeyArrowLeft):
			a.Gravity = level.GravityLeft
		case ev.Mods.Contain(input.ModAlt) && ev.Is(input.KeyArrowRight):
			a.Gravity = level.GravityRight
		default:
			return false
		}
		t.store.SetToolState(t.id, a)
		return true
	case level.KindPicture:
		step := 0
		switch {
		case ev.Is("]"):
			step = 1
		case ev.Is("["):
			step = -1
		default:
			return false
		}
		if len(t.pictures) == 0 {
			return true
		}
		i := slices.Index(t.pictures, t.PictureSettings().Name)
		i = (i + step + len(t.pictures)) % len(t.pictures)
		t.store.SetToolState(t.id, PictureSettings{Name: t.pictures[i]})
		return true
	}
	return false
}

// Render draws a translucent draft of the object under the cursor.
func (t *Place) Render(c render.Canvas, f Frame) {
	if !f.MouseInside {
		return
	}
	var look Look
	switch t.kind {
	case level.KindApple:
		look = LookFor(f.Palette, t.kind, t.AppleSettings().Animation, "")
	case level.KindPicture:
		look = LookFor(f.Palette, t.kind, 0, t.PictureSettings().Name)
	default:
		look = LookFor(f.Palette, t.kind, 0, "")
	}
	DrawObject(c, f, look, f.Mouse, 0.5)
}
