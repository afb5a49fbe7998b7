// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/smoke/internal/adapters/config"
	_ "go.trai.ch/smoke/internal/adapters/fs"
	_ "go.trai.ch/smoke/internal/adapters/journal"
	_ "go.trai.ch/smoke/internal/adapters/linear"
	_ "go.trai.ch/smoke/internal/adapters/logger"
	_ "go.trai.ch/smoke/internal/adapters/shell"
	_ "go.trai.ch/smoke/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/smoke/internal/app"
	_ "go.trai.ch/smoke/internal/engine/harness"
)
