package automation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
)

// requestError is reported to the client with status 400.
type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return requestError{err} }

type handlerFunc func(e *engine.Engine, body []byte) (any, error)

// handle reads the body on the request goroutine and runs fn on the engine
// goroutine through Do. A nil result answers 204.
func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxImportSize+1))
		if err != nil {
			s.writeError(w, badRequest(fmt.Errorf("reading body: %w", err)))
			return
		}
		if len(body) > MaxImportSize {
			s.writeError(w, badRequest(fmt.Errorf("body is larger than %d bytes", MaxImportSize)))
			return
		}

		var res any
		err = s.engine.Do(r.Context(), func(e *engine.Engine) error {
			var err error
			res, err = fn(e, body)
			return err
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		if res == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Printf("automation: writing response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	type jError struct {
		Error string `json:"error"`
	}
	status := http.StatusInternalServerError
	var re requestError
	switch {
	case errors.As(err, &re):
		status = http.StatusBadRequest
	case errors.Is(err, levelio.ErrNoPolygons):
		status = http.StatusConflict
	}
	s.log.Printf("automation: %v", err)

	data, _ := json.Marshal(jError{Error: err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Printf("automation: writing response: %v", err)
	}
}

func decode(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(fmt.Errorf("decoding body: %w", err))
	}
	return nil
}

type idsResponse[T any] struct {
	IDs []T `json:"ids"`
}

type changedResponse struct {
	Changed bool `json:"changed"`
}

// appleRequest names the gravity instead of using its number.
type appleRequest struct {
	Position  level.Position `json:"position"`
	Animation int            `json:"animation,omitempty"`
	Gravity   string         `json:"gravity,omitempty"`
}

func (s *Server) level(e *engine.Engine, _ []byte) (any, error) {
	return e.Summary(), nil
}

func (s *Server) addApples(e *engine.Engine, body []byte) (any, error) {
	var req []appleRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	specs := make([]engine.AppleSpec, len(req))
	for i, a := range req {
		g := level.GravityNone
		if a.Gravity != "" {
			var ok bool
			if g, ok = level.ParseGravity(a.Gravity); !ok {
				return nil, badRequest(fmt.Errorf("apple %d: unknown gravity %q", i, a.Gravity))
			}
		}
		specs[i] = engine.AppleSpec{Position: a.Position, Animation: a.Animation, Gravity: g}
	}
	ids, err := e.AddApples(specs)
	if err != nil {
		return nil, badRequest(err)
	}
	return idsResponse[level.ObjectID]{IDs: ids}, nil
}

func (s *Server) addKillers(e *engine.Engine, body []byte) (any, error) {
	var req []level.Position
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	ids, err := e.AddKillers(req)
	if err != nil {
		return nil, badRequest(err)
	}
	return idsResponse[level.ObjectID]{IDs: ids}, nil
}

func (s *Server) addFlowers(e *engine.Engine, body []byte) (any, error) {
	var req []level.Position
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	ids, err := e.AddFlowers(req)
	if err != nil {
		return nil, badRequest(err)
	}
	return idsResponse[level.ObjectID]{IDs: ids}, nil
}

func (s *Server) moveStart(e *engine.Engine, body []byte) (any, error) {
	var pos level.Position
	if err := decode(body, &pos); err != nil {
		return nil, err
	}
	if err := e.MoveStart(pos); err != nil {
		return nil, badRequest(err)
	}
	return nil, nil
}

func (s *Server) addPolygons(e *engine.Engine, body []byte) (any, error) {
	var req []engine.PolygonSpec
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	ids, err := e.AddPolygons(req)
	if err != nil {
		return nil, badRequest(err)
	}
	return idsResponse[level.PolygonID]{IDs: ids}, nil
}

func (s *Server) setName(e *engine.Engine, body []byte) (any, error) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	e.SetLevelName(req.Name)
	return nil, nil
}

func (s *Server) fit(e *engine.Engine, _ []byte) (any, error) {
	e.FitToView()
	return nil, nil
}

func (s *Server) undo(e *engine.Engine, _ []byte) (any, error) {
	return changedResponse{Changed: e.Undo()}, nil
}

func (s *Server) redo(e *engine.Engine, _ []byte) (any, error) {
	return changedResponse{Changed: e.Redo()}, nil
}

func (s *Server) importLevel(e *engine.Engine, body []byte) (any, error) {
	if err := e.Import(body); err != nil {
		return nil, badRequest(err)
	}
	return e.Summary(), nil
}

// export writes the level file itself rather than JSON.
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	var data []byte
	var name string
	err := s.engine.Do(r.Context(), func(e *engine.Engine) error {
		var err error
		data, err = e.Export()
		name = e.Store().Level().Name
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if name == "" {
		name = "level"
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".lev"))
	if _, err := w.Write(data); err != nil {
		s.log.Printf("automation: writing response: %v", err)
	}
}
