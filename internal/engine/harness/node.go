package harness

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smoke/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smoke/internal/adapters/linear"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smoke/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smoke/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smoke/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smoke/internal/core/ports"
)

// NodeID is the unique identifier for the harness Graft node.
const NodeID graft.ID = "engine.harness"

func init() {
	graft.Register(graft.Node[*Harness]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.WorkspaceNodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Harness, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			workspace, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(executor, workspace, hasher, telemetry, reporter, log), nil
		},
	})
}
