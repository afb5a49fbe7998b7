package linear

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smoke/internal/core/ports"
)

// NodeID is the unique identifier for the reporter Graft node.
const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Reporter, error) {
			return NewReporter(nil, nil), nil
		},
	})
}
