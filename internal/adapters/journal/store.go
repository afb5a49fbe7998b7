// Package journal persists the history of smoke runs as a flat JSON file.
package journal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Journal = (*Store)(nil)

// Store implements ports.Journal using a flat JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	records []domain.RunRecord
}

// NewStore opens the journal backed by the file at path. A missing file is an empty journal.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: filepath.Clean(path),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read run journal"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal run journal"), "path", s.path)
	}

	return nil
}

// save writes records as the whole journal. Callers must hold s.mu.
func (s *Store) save(records []domain.RunRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run journal")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for run journal"), "path", dir)
	}

	// Write to a sibling file and rename so a crash never leaves a torn journal.
	tmp := s.path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write run journal"), "path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace run journal"), "path", s.path)
	}

	return nil
}

// Append records a finished run and persists the journal.
func (s *Store) Append(rec domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.records), rec)
	if err := s.save(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// List returns every recorded run, oldest first.
func (s *Store) List() ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RunRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
