package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smoke/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/smoke/internal/adapters/journal"            //nolint:depguard // Wired in app layer
	"go.trai.ch/smoke/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/smoke/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/smoke/internal/engine/harness"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			journal.NodeID,
			harness.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			journals, err := graft.Dep[ports.JournalOpener](ctx)
			if err != nil {
				return nil, err
			}

			h, err := graft.Dep[*harness.Harness](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, journals, h, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
