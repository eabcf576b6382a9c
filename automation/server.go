// Package automation exposes the editing surface of an engine over HTTP so
// scripts and tests can drive a running editor.
package automation

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// MaxImportSize bounds the body of POST /import.
const MaxImportSize = 16 << 20

type Server struct {
	engine *engine.Engine
	log    *log.Logger
	router *mux.Router
}

// New builds the route table for e. A nil logger uses the standard logger.
func New(e *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{engine: e, log: logger, router: mux.NewRouter()}

	r := s.router
	r.HandleFunc("/level", s.handle(s.level)).Methods(http.MethodGet)
	r.HandleFunc("/apples", s.handle(s.addApples)).Methods(http.MethodPost)
	r.HandleFunc("/killers", s.handle(s.addKillers)).Methods(http.MethodPost)
	r.HandleFunc("/flowers", s.handle(s.addFlowers)).Methods(http.MethodPost)
	r.HandleFunc("/start", s.handle(s.moveStart)).Methods(http.MethodPut)
	r.HandleFunc("/polygons", s.handle(s.addPolygons)).Methods(http.MethodPost)
	r.HandleFunc("/name", s.handle(s.setName)).Methods(http.MethodPut)
	r.HandleFunc("/fit", s.handle(s.fit)).Methods(http.MethodPost)
	r.HandleFunc("/undo", s.handle(s.undo)).Methods(http.MethodPost)
	r.HandleFunc("/redo", s.handle(s.redo)).Methods(http.MethodPost)
	r.HandleFunc("/export", s.export).Methods(http.MethodGet)
	r.HandleFunc("/import", s.handle(s.importLevel)).Methods(http.MethodPost)
	return s
}

// Handler returns the routes wrapped with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.RecoveryLogger(s.log), handlers.PrintRecoveryStack(true))(s.router)
	return handlers.LoggingHandler(s.log.Writer(), h)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.log,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Printf("automation: shutdown: %v", err)
		}
	}()

	s.log.Printf("[automation] listening on %v", ln.Addr())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
