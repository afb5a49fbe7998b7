// Package fs provides the filesystem adapters: workspace provisioning and artifact hashing.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// workspacePattern names per-run directories, e.g. smoke-2841937465.
const workspacePattern = "smoke-*"

// copyParallelism bounds concurrent file copies while populating a workspace.
const copyParallelism = 4

var _ ports.Workspace = (*Workspace)(nil)

// Workspace implements ports.Workspace on the local filesystem.
type Workspace struct{}

// NewWorkspace creates a new Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Create makes a fresh directory under root, or under the system temp dir when root is empty.
func (w *Workspace) Create(ctx context.Context, root string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if root != "" {
		if err := os.MkdirAll(root, 0o750); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to create workspace root"), "path", root)
		}
	}
	dir, err := os.MkdirTemp(root, workspacePattern)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create workspace"), "path", root)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve workspace path"), "path", dir)
	}
	return abs, nil
}

// Populate copies srcs into dir concurrently. Every copy finishes or the first error is returned.
func (w *Workspace) Populate(ctx context.Context, dir string, srcs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(copyParallelism)

	for _, src := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return copyFile(src, filepath.Join(dir, filepath.Base(src)))
		})
	}
	return g.Wait()
}

// CreateFile creates name inside dir, refusing to replace an existing file.
func (w *Workspace) CreateFile(dir, name string) (io.WriteCloser, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644) //nolint:gosec // path is inside the run's own workspace
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create workspace file"), "path", path)
	}
	return f, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src) //nolint:gosec // sources come from the harness configuration
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // dst is inside the run's own workspace
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create workspace file"), "path", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to close workspace file"), "path", dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy source"), "path", src)
	}
	return nil
}
