// Package watch reports files changed by other programs. Bursts of events
// for one file collapse into a single notification once the file has been
// quiet for the debounce interval.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

type Options struct {
	// Debounce is the quiet time after the last event before a path is
	// reported.
	Debounce time.Duration
	// Match selects the paths to report. Nil reports every path.
	Match func(path string) bool
}

type Watcher struct {
	fs     *fsnotify.Watcher
	opts   Options
	events chan string
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// New watches the given directories.
func New(opts Options, dirs ...string) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:     fw,
		opts:   opts,
		events: make(chan string, 16),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Files watches single files. Their directories are watched so editors that
// save by renaming a temporary file are still seen.
func Files(debounce time.Duration, files ...string) (*Watcher, error) {
	want := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		want[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	list := make([]string, 0, len(dirs))
	for d := range dirs {
		list = append(list, d)
	}
	return New(Options{
		Debounce: debounce,
		Match: func(path string) bool {
			abs, err := filepath.Abs(path)
			return err == nil && want[abs]
		},
	}, list...)
}

// Events delivers changed paths. It is closed by Close.
func (w *Watcher) Events() <-chan string { return w.events }

// Errors delivers watcher errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error { return w.errors }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timers := make(map[string]*time.Timer)
	fired := make(chan string)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.opts.Match != nil && !w.opts.Match(event.Name) {
				continue
			}
			name := event.Name
			if t, ok := timers[name]; ok {
				t.Reset(w.opts.Debounce)
				continue
			}
			timers[name] = time.AfterFunc(w.opts.Debounce, func() {
				select {
				case fired <- name:
				case <-w.done:
				}
			})

		case name := <-fired:
			delete(timers, name)
			select {
			case w.events <- name:
			case <-w.done:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}
