package ports

import (
	"context"
	"io"

	"go.trai.ch/smoke/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the steps of a run.
type Telemetry interface {
	// Record starts a vertex for a step and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded step.
type Vertex interface {
	// Stdout captures the step's standard output stream.
	Stdout() io.Writer
	// Stderr captures the step's error output stream.
	Stderr() io.Writer
	// Log records a message against the step.
	Log(level domain.LogLevel, msg string)
	// Complete marks the step as finished, successfully when err is nil.
	Complete(err error)
	// Span returns the step's recorded timing. It is only available after Complete.
	Span() (domain.Span, bool)
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex stored in ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
