package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bloodmagesoftware/motoed/store"
	"gopkg.in/yaml.v3"
)

// Session is the persisted editor state of one level: the level itself,
// camera, active tool, tool scratch state and view flags.
type Session = store.State

// SessionPath returns where the editor keeps the session of a level file.
func SessionPath(levelPath string) string {
	return levelPath + ".session.yaml"
}

// LoadSession reads the session saved next to levelPath. ok is false when
// there is none. The session level is dropped unless the session was written
// after the level file, so a level changed elsewhere wins over stale work.
func LoadSession(levelPath string) (st Session, ok bool, err error) {
	path := SessionPath(levelPath)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("reading session: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, false, fmt.Errorf("reading session: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return Session{}, false, fmt.Errorf("parsing session %s: %w", path, err)
	}

	if lev, err := os.Stat(levelPath); err == nil && !info.ModTime().After(lev.ModTime()) {
		st.Level = nil
	}
	return st, true, nil
}

// SaveSession writes the session of s next to levelPath.
func SaveSession(levelPath string, s *store.Store) error {
	st, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("capturing session: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(SessionPath(levelPath), data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
