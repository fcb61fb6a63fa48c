// Package session implements the process-wide single-slot session store
// (C1): at most one capture session exists at any instant, and all mutation
// of its event buffer goes through a single mutex.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/captureforge/engine/internal/model"
)

// ErrAlreadyActive is returned by Create when a session already occupies the slot.
var ErrAlreadyActive = errors.New("session: already active")

// ErrNotActive is returned by operations that require an occupied slot.
var ErrNotActive = errors.New("session: not active")

// Paths collects the derived filesystem locations for a session's output,
// computed once at creation time so C2/C3/C4 don't re-derive them.
type Paths struct {
	OutputDir     string
	RecordingsDir string
	SegmentsCSV   string
	TimestampsTxt string
}

// Session is a single capture run: a stable identifier, its on-disk layout,
// and the in-memory event buffer appended to by Input Capture.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Paths     Paths

	events []model.InputEvent
}

// Store is the process-wide single-slot holder. The zero value is ready to use.
type Store struct {
	mu      sync.Mutex
	current *Session
}

// Create materializes a new session's output directories and occupies the
// slot. It fails with ErrAlreadyActive if a session is already present.
func (s *Store) Create(appDataDir string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, ErrAlreadyActive
	}

	id := uuid.New()
	ts := time.Now().Format("20060102_150405")
	outputDir := filepath.Join(appDataDir, "output", ts)
	recordingsDir := filepath.Join(outputDir, "recordings")

	if err := os.MkdirAll(recordingsDir, 0755); err != nil {
		return nil, fmt.Errorf("session: create output directories: %w", err)
	}

	sess := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Paths: Paths{
			OutputDir:     outputDir,
			RecordingsDir: recordingsDir,
			SegmentsCSV:   filepath.Join(outputDir, "segments.csv"),
			TimestampsTxt: filepath.Join(outputDir, "timestamps.txt"),
		},
	}

	s.current = sess
	return sess, nil
}

// WithEvents lends exclusive access to the current session's event buffer
// to f, which receives an append function; every event f passes to it is
// added to the buffer. It returns ErrNotActive if no session is active.
func (s *Store) WithEvents(f func(append func(model.InputEvent))) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNotActive
	}

	f(func(e model.InputEvent) {
		s.current.events = append(s.current.events, e)
	})
	return nil
}

// Drain moves all buffered events out of the current session, leaving it
// empty, and returns them. It returns ErrNotActive if no session is active.
func (s *Store) Drain() ([]model.InputEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNotActive
	}

	drained := s.current.events
	s.current.events = nil
	return drained, nil
}

// Clear empties the slot unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Active reports whether a session currently occupies the slot, and returns
// it for read-only inspection (e.g. a status command). It does not mutate
// the event buffer and is safe to call from any goroutine.
func (s *Store) Active() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}
