package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	tape   *progrock.Tape
	id     string
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer to capture error output stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a leveled message on the vertex's output stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Span reads the vertex back from the tape.
func (v *Vertex) Span() (domain.Span, bool) {
	for _, vtx := range v.tape.Vertices() {
		if vtx.GetId() != v.id || vtx.GetCompleted() == nil {
			continue
		}
		span := domain.Span{
			Name:      vtx.GetName(),
			Started:   vtx.GetStarted().AsTime(),
			Completed: vtx.GetCompleted().AsTime(),
			Error:     vtx.GetError(),
		}
		if vtx.GetCanceled() && span.Error == "" {
			span.Error = "canceled"
		}
		return span, true
	}
	return domain.Span{}, false
}
