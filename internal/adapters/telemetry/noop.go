// Package telemetry provides telemetry implementations that need no backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
)

var (
	_ ports.Telemetry = (*Noop)(nil)
	_ ports.Vertex    = (*NoopVertex)(nil)
)

// Noop is a telemetry sink that records nothing.
type Noop struct{}

// NewNoop creates a new Noop.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &NoopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (n *Noop) Close() error { return nil }

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Stdout discards.
func (v *NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr discards.
func (v *NoopVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (v *NoopVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (v *NoopVertex) Complete(error) {}

// Span reports nothing recorded.
func (v *NoopVertex) Span() (domain.Span, bool) { return domain.Span{}, false }
