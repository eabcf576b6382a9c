// Package store is the single source of truth for an editor session: the
// level being edited, the camera, the active tool with its scratch state and
// the UI flags. A Store is owned by one goroutine; the engine serializes all
// access to it.
package store

import (
	"log"
	"maps"
	"slices"
	"time"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/history"
	"github.com/bloodmagesoftware/motoed/level"
)

// Options tune a Store. Zero values fall back to the defaults below.
type Options struct {
	MinZoom         float64
	MaxZoom         float64
	HistoryThrottle time.Duration
	HistoryLimit    int
	// Clock returns the time used for history coalescing.
	Clock  func() time.Time
	Logger *log.Logger
}

const (
	DefaultMinZoom         = 0.1
	DefaultMaxZoom         = 200
	DefaultHistoryThrottle = 500 * time.Millisecond
	DefaultHistoryLimit    = 200
)

func (o Options) withDefaults() Options {
	if o.MinZoom <= 0 {
		o.MinZoom = DefaultMinZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MaxZoom = DefaultMaxZoom
	}
	if o.HistoryThrottle == 0 {
		o.HistoryThrottle = DefaultHistoryThrottle
	}
	if o.HistoryLimit == 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Flags are UI toggles that are not part of the undo history.
type Flags struct {
	ShowSprites    bool `yaml:"show_sprites" json:"show_sprites"`
	AnimateSprites bool `yaml:"animate_sprites" json:"animate_sprites"`
	Debug          bool `yaml:"debug" json:"debug"`
}

// entry is the persisted subset tracked by the undo history.
type entry struct {
	Level      *level.Level
	ActiveTool ToolID
	ToolState  map[ToolID]any
}

type Store struct {
	opts Options
	log  *log.Logger

	level     *level.Level
	camera    geom.Camera
	flags     Flags
	dirty     bool
	toolState map[ToolID]any

	tools        []Tool
	activeTool   ToolID
	widgets      []Widget
	activeWidget WidgetID

	history         *history.History[entry]
	polygonsVersion uint64

	batch        int
	pending      bool
	levelChanged bool

	nextListener int
	listeners    map[int]func()
}

// New creates a store editing lvl. A nil level starts from level.New().
// The store takes ownership of lvl.
func New(lvl *level.Level, opts Options) *Store {
	opts = opts.withDefaults()
	if lvl == nil {
		lvl = level.New()
	}
	s := &Store{
		opts:      opts,
		log:       opts.Logger,
		level:     lvl,
		camera:    geom.DefaultCamera(),
		flags:     Flags{ShowSprites: true, AnimateSprites: true},
		toolState: make(map[ToolID]any),
		listeners: make(map[int]func()),
	}
	s.history = history.New(s.entry(), opts.HistoryThrottle, opts.HistoryLimit)
	return s
}

func (s *Store) entry() entry {
	return entry{
		Level:      s.level.Clone(),
		ActiveTool: s.activeTool,
		ToolState:  maps.Clone(s.toolState),
	}
}

// Level returns the level being edited. Callers must not modify it directly;
// every change goes through a Store method so history and caches follow.
func (s *Store) Level() *level.Level {
	return s.level
}

// PolygonsVersion changes whenever any polygon is added, removed or edited.
func (s *Store) PolygonsVersion() uint64 {
	return s.polygonsVersion
}

// Subscribe registers fn to run after every committed change. The returned
// function removes it again.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Batch runs fn and commits everything it changed as one update: listeners
// run once and history receives a single snapshot.
func (s *Store) Batch(fn func()) {
	s.batch++
	defer func() {
		s.batch--
		if s.batch == 0 && s.pending {
			s.flush()
		}
	}()
	fn()
}

// levelTouched marks a level mutation. polygons says whether terrain changed.
func (s *Store) levelTouched(polygons bool) {
	if polygons {
		s.polygonsVersion++
	}
	s.levelChanged = true
	s.touched()
}

func (s *Store) touched() {
	s.pending = true
	if s.batch == 0 {
		s.flush()
	}
}

func (s *Store) flush() {
	s.pending = false
	if s.levelChanged {
		s.dirty = true
		s.levelChanged = false
	}
	s.history.Record(s.entry(), s.opts.Clock())
	s.notify()
}

func (s *Store) notify() {
	keys := slices.Sorted(maps.Keys(s.listeners))
	for _, k := range keys {
		if fn, ok := s.listeners[k]; ok {
			fn()
		}
	}
}

// Dirty reports whether the level changed since the last MarkClean.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag, typically after saving.
func (s *Store) MarkClean() {
	s.dirty = false
	s.notify()
}

func (s *Store) Flags() Flags {
	return s.flags
}

func (s *Store) SetFlags(f Flags) {
	if f == s.flags {
		return
	}
	s.flags = f
	s.notify()
}

// ToggleDebug flips the debug overlay flag.
func (s *Store) ToggleDebug() {
	f := s.flags
	f.Debug = !f.Debug
	s.SetFlags(f)
}

// Undo restores the previous snapshot of the level, active tool and tool
// state. Lifecycle hooks are not invoked; the snapshot is restored verbatim.
func (s *Store) Undo() bool {
	e, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restoreEntry(e)
	return true
}

// Redo re-applies a snapshot undone by Undo.
func (s *Store) Redo() bool {
	e, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restoreEntry(e)
	return true
}

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

func (s *Store) restoreEntry(e entry) {
	s.level = e.Level.Clone()
	s.activeTool = e.ActiveTool
	s.toolState = maps.Clone(e.ToolState)
	if s.toolState == nil {
		s.toolState = make(map[ToolID]any)
	}
	for id, v := range s.toolState {
		if st, ok := v.(Settler); ok {
			s.toolState[id] = st.Settle()
		}
	}
	s.polygonsVersion++
	s.dirty = true
	s.notify()
}

// BreakHistory closes the current coalescing window so the next change
// becomes its own undo step.
func (s *Store) BreakHistory() {
	s.history.Break()
}
