// Package progrock records smoke steps as Progrock vertices on a tape.
// The tape is the source of the step timings kept in each run record.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/smoke/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	tape *progrock.Tape
	rec  *progrock.Recorder

	mu   sync.Mutex
	seen map[string]int
}

// New creates a new Recorder with a fresh tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder writing to tape.
func NewRecorder(tape *progrock.Tape) *Recorder {
	return &Recorder{
		tape: tape,
		rec:  progrock.NewRecorder(tape),
		seen: make(map[string]int),
	}
}

// Record starts recording a new vertex.
// Repeated names get distinct digests so a second run of the same target stays separate.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	dig := r.digestFor(name)
	v := r.rec.Vertex(dig, name)
	vertex := &Vertex{vertex: v, tape: r.tape, id: dig.String()}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

func (r *Recorder) digestFor(name string) digest.Digest {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.seen[name]
	r.seen[name] = n + 1
	if n == 0 {
		return digest.FromString(name)
	}
	return digest.FromString(fmt.Sprintf("%s#%d", name, n))
}

// Close completes the root group and closes the tape.
func (r *Recorder) Close() error {
	r.rec.Complete()
	return r.rec.Close()
}
