package journal

import (
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
)

var _ ports.JournalOpener = (*Opener)(nil)

// Opener implements ports.JournalOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the file-backed journal at path, or a discarding journal when path is empty.
func (o *Opener) Open(path string) (ports.Journal, error) {
	if path == "" {
		return Discard{}, nil
	}
	return NewStore(path)
}

// Discard is a journal that records nothing.
type Discard struct{}

// Append does nothing.
func (Discard) Append(domain.RunRecord) error { return nil }

// List returns no records.
func (Discard) List() ([]domain.RunRecord, error) { return nil, nil }
