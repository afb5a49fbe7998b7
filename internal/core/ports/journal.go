package ports

import "go.trai.ch/smoke/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks

// Journal keeps the history of finished runs.
type Journal interface {
	// Append records a finished run.
	Append(rec domain.RunRecord) error
	// List returns every recorded run, oldest first.
	List() ([]domain.RunRecord, error)
}

// JournalOpener opens the journal stored at a path.
// An empty path yields a journal that records nothing.
type JournalOpener interface {
	Open(path string) (Journal, error)
}
