package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smoke/internal/core/ports"
)

const (
	// WorkspaceNodeID is the unique identifier for the workspace Graft node.
	WorkspaceNodeID graft.ID = "adapter.fs.workspace"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.Workspace]{
		ID:        WorkspaceNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Workspace, error) {
			return NewWorkspace(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
