// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/smoke/internal/core/domain"
)

// Executor defines the interface for running external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation and blocks until it exits.
	//
	// A command that ran and exited non-zero, or that could not be started,
	// yields a *domain.ToolError carrying the status the run should exit with.
	Execute(ctx context.Context, inv domain.Invocation) error
}
