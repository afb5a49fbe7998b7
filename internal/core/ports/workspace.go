package ports

import (
	"context"
	"io"
)

// Workspace provisions the per-run scratch directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Create makes a new, empty directory under root (the system temp dir when
	// root is empty). It never returns a directory handed out before.
	Create(ctx context.Context, root string) (string, error)

	// Populate copies every file in srcs into dir, keeping base names.
	Populate(ctx context.Context, dir string, srcs []string) error

	// CreateFile creates a new file named name inside dir for writing.
	// It fails if the file already exists.
	CreateFile(dir, name string) (io.WriteCloser, error)
}
