package cmd

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/motoed/assets"
	"github.com/bloodmagesoftware/motoed/automation"
	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/gioview"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/project"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/bloodmagesoftware/motoed/sysclip"
	"github.com/bloodmagesoftware/motoed/watch"
	"github.com/spf13/cobra"
)

var editListen string

var editCmd = &cobra.Command{
	Use:     "edit {level-name}",
	Aliases: []string{"level"},
	Short:   "Edit the specified level",
	Long: `Opens the visual editor for the level. A missing level starts from the default
level and is created on the first save. Unsaved work and the view are kept in a
session file next to the level and restored on the next start.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadProject()
		if err != nil {
			return err
		}
		levelFilePath := cfg.LevelPath(root, args[0])
		lvl, exists, err := openLevel(levelFilePath)
		if err != nil {
			return err
		}
		if exists {
			log.Printf("loaded level %s", levelFilePath)
		} else {
			log.Printf("new level %s", levelFilePath)
		}

		listen := editListen
		if listen == "" {
			listen = cfg.Automation.Listen
		}

		go func() {
			window := new(app.Window)
			window.Option(app.Title("motoed - " + filepath.Base(levelFilePath)))
			window.Perform(system.ActionMaximize)
			err := run(window, editSession{
				root:   root,
				config: cfg,
				path:   levelFilePath,
				level:  lvl,
				listen: listen,
			})
			if err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

type editSession struct {
	root   string
	config *project.Config
	path   string
	level  *level.Level
	listen string
}

func run(window *app.Window, es editSession) error {
	logger := log.Default()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	library := assets.NewLibrary(assets.Options{
		Logger: logger,
		OnLoad: func(string) { window.Invalidate() },
	})
	assetsDir := filepath.Join(es.root, es.config.AssetsDir)
	library.LoadDir(assetsDir)

	s := store.New(es.level, es.config.Editor.StoreOptions(logger))
	opts := es.config.Editor.EngineOptions(sysclip.Open(logger), logger)
	opts.Sprites = library
	opts.Wake = window.Invalidate
	e := engine.New(s, opts)

	st, ok, err := project.LoadSession(es.path)
	switch {
	case err != nil:
		logger.Printf("Ignoring session: %v", err)
		e.RequestFitToView()
	case ok:
		s.Restore(st)
	default:
		e.RequestFitToView()
	}

	// lastWritten is only touched on this goroutine, which owns the engine.
	var lastWritten []byte
	save := func() error {
		data, err := e.Export()
		if err != nil {
			return err
		}
		if err := writeLevel(es.path, data); err != nil {
			return err
		}
		lastWritten = data
		return nil
	}

	if w, err := watch.Files(0, es.path); err != nil {
		logger.Printf("Not watching level file: %v", err)
	} else {
		defer w.Close()
		go reloadLevel(w, e, es.path, &lastWritten, logger)
	}
	if w, err := watch.New(watch.Options{Match: assets.Supported}, assetsDir); err != nil {
		logger.Printf("Not watching assets: %v", err)
	} else {
		defer w.Close()
		go reloadSprites(w, library, window, logger)
	}

	if es.listen != "" {
		go func() {
			if err := automation.New(e, logger).ListenAndServe(ctx, es.listen); err != nil {
				logger.Printf("Automation server stopped: %v", err)
			}
		}()
	}

	theme := material.NewTheme()
	view := gioview.New(e, theme, gioview.Options{
		Title:  filepath.Base(es.path),
		Save:   save,
		Logger: logger,
	})

	var ops op.Ops
	for {
		switch ev := window.Event().(type) {
		case app.DestroyEvent:
			if err := project.SaveSession(es.path, s); err != nil {
				logger.Printf("Failed to save session: %v", err)
			}
			return ev.Err
		case app.FrameEvent:
			// This graphics context is used for managing the rendering state.
			gtx := app.NewContext(&ops, ev)

			view.Layout(gtx)

			// Pass the drawing operations to the GPU.
			ev.Frame(gtx.Ops)
		}
	}
}

// reloadLevel imports the level file when another program changes it. Unsaved
// edits win over the file on disk.
func reloadLevel(w *watch.Watcher, e *engine.Engine, path string, lastWritten *[]byte, logger *log.Logger) {
	for range w.Events() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Printf("Failed to read changed level: %v", err)
			continue
		}
		e.Post(engine.Func(func(e *engine.Engine) {
			if bytes.Equal(data, *lastWritten) {
				return
			}
			s := e.Store()
			if s.Dirty() {
				logger.Printf("Level %s changed on disk, keeping unsaved edits", path)
				return
			}
			if err := e.Import(data); err != nil {
				return
			}
			*lastWritten = data
			s.MarkClean()
			logger.Printf("Reloaded level %s", path)
		}))
	}
}

func reloadSprites(w *watch.Watcher, library *assets.Library, window *app.Window, logger *log.Logger) {
	for path := range w.Events() {
		img, err := assets.LoadFile(path, assets.DefaultMaxEdge)
		if err != nil {
			logger.Printf("Failed to reload sprite %s: %v", path, err)
			continue
		}
		library.Add(assets.Name(path), img)
		window.Invalidate()
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editListen, "listen", "l", "", "Serve the automation API on this address")
}
