package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/bloodmagesoftware/motoed/automation"
	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/spf13/cobra"
)

// DefaultListen is used when neither --listen nor automation.listen is set.
const DefaultListen = "127.0.0.1:7070"

var (
	serveListen string
	serveWrite  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve {level-name}",
	Short: "Serve the automation API for a level without a window",
	Long: `Opens the level headless and serves the HTTP automation API until interrupted.
With --write the level is saved on exit when it was changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadProject()
		if err != nil {
			return err
		}
		path := cfg.LevelPath(root, args[0])
		lvl, _, err := openLevel(path)
		if err != nil {
			return err
		}

		addr := serveListen
		if addr == "" {
			addr = cfg.Automation.Listen
		}
		if addr == "" {
			addr = DefaultListen
		}

		logger := log.Default()
		s := store.New(lvl, cfg.Editor.StoreOptions(logger))
		e := engine.New(s, cfg.Editor.EngineOptions(nil, logger))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		served := make(chan struct{})
		go func() {
			defer close(served)
			if err := e.Serve(ctx); err != nil {
				logger.Printf("engine: %v", err)
			}
		}()

		err = automation.New(e, logger).ListenAndServe(ctx, addr)
		stop()
		<-served
		if err != nil {
			return err
		}

		if !serveWrite || !s.Dirty() {
			return nil
		}
		data, err := e.Export()
		if err != nil {
			return err
		}
		if err := writeLevel(path, data); err != nil {
			return err
		}
		logger.Printf("saved level %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Address to listen on (default automation.listen or "+DefaultListen+")")
	serveCmd.Flags().BoolVarP(&serveWrite, "write", "w", false, "Save the level on exit when it changed")
}
