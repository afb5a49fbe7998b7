// Package harness runs the build-library, generate-header, compile-consumer, run-consumer
// sequence for one target.
package harness

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/zerr"
)

// Result is the outcome of a single smoke run.
type Result struct {
	// ExitCode is the consumer's own status after a complete run,
	// or the failing tool's status otherwise.
	ExitCode int
	// Workspace is the run's scratch directory. Empty if it could not be created.
	Workspace string
	// Phase is DONE or FAILED.
	Phase domain.Phase
	// Record summarizes the run for the journal.
	Record domain.RunRecord
}

// Option configures a single run.
type Option func(*options)

type options struct {
	workspaceRoot string
}

// WithWorkspaceRoot places the run's workspace under root instead of the system temp dir.
func WithWorkspaceRoot(root string) Option {
	return func(o *options) {
		o.workspaceRoot = root
	}
}

// Harness executes smoke runs. Steps run strictly one after another.
type Harness struct {
	executor  ports.Executor
	workspace ports.Workspace
	hasher    ports.Hasher
	telemetry ports.Telemetry
	reporter  ports.Reporter
	logger    ports.Logger
	now       func() time.Time
}

// New creates a new Harness.
func New(
	executor ports.Executor,
	workspace ports.Workspace,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	reporter ports.Reporter,
	logger ports.Logger,
) *Harness {
	return &Harness{
		executor:  executor,
		workspace: workspace,
		hasher:    hasher,
		telemetry: telemetry,
		reporter:  reporter,
		logger:    logger,
		now:       time.Now,
	}
}

// Run builds the library, generates its header, compiles the consumer against both and runs it.
// It stops at the first failing step and returns a *domain.StepError wrapping the cause.
// A consumer that runs and exits non-zero is not a failure: its status is the result's ExitCode.
func (h *Harness) Run(
	ctx context.Context,
	p domain.Project,
	tools domain.Toolset,
	t domain.Target,
	opts ...Option,
) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &run{
		h:     h,
		state: domain.NewRunState(),
		record: domain.RunRecord{
			Target:    t.Name,
			Triple:    t.Triple,
			StartedAt: h.now(),
		},
	}

	if err := t.Validate(); err != nil {
		return r.fail(domain.PhaseStart, err)
	}
	if err := p.Validate(); err != nil {
		return r.fail(domain.PhaseStart, err)
	}

	root, err := filepath.Abs(p.Root)
	if err != nil {
		return r.fail(domain.PhaseStart, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "path", p.Root))
	}
	p.Root = root

	ws, err := h.workspace.Create(ctx, o.workspaceRoot)
	if err != nil {
		return r.fail(domain.PhaseStart, &domain.StepError{Phase: domain.PhaseStart, Err: err})
	}
	r.record.ID = filepath.Base(ws)
	r.record.Workspace = ws
	h.reporter.RunStarted(t, ws)

	for _, step := range Plan(p, tools, t, ws) {
		code, err := r.step(ctx, t, step, ws)
		if err != nil {
			return r.fail(step.Phase, &domain.StepError{Phase: step.Phase, Err: err})
		}
		if err := r.state.Advance(step.Phase); err != nil {
			return r.fail(step.Phase, err)
		}
		r.record.ExitCode = code

		if step.Phase == domain.PhaseLibraryBuilt {
			r.record.ArchiveHash = r.fingerprint(p.ArchivePath(t))
		}
		if step.Phase == domain.PhaseHeaderGenerated {
			r.record.HeaderHash = r.fingerprint(filepath.Join(ws, p.Header))
		}
	}

	if err := r.state.Advance(domain.PhaseDone); err != nil {
		return r.fail(domain.PhaseDone, err)
	}
	return r.finish(), nil
}

// run is the mutable state of one Run call.
type run struct {
	h      *Harness
	state  *domain.RunState
	record domain.RunRecord
}

// step runs a single stage. For the consumer it returns the consumer's own exit status.
func (r *run) step(ctx context.Context, t domain.Target, step Step, ws string) (code int, err error) {
	h := r.h
	ctx, vertex := h.telemetry.Record(ctx, t.Name+"/"+step.Phase.Step())
	start := h.now()
	h.reporter.StepStarted(step.Phase, step.Describe(ws))
	defer func() {
		vertex.Complete(err)
		if span, ok := vertex.Span(); ok {
			r.record.Steps = append(r.record.Steps, span)
		}
		h.reporter.StepFinished(step.Phase, h.now().Sub(start), err)
	}()

	if len(step.Invocation.Command) == 0 {
		return 0, h.workspace.Populate(ctx, ws, step.Copies)
	}

	stdout, stderr := h.reporter.StepOutput(step.Phase)
	inv := step.Invocation
	inv.Stdout = io.MultiWriter(vertex.Stdout(), stdout)
	inv.Stderr = io.MultiWriter(vertex.Stderr(), stderr)

	if step.Capture != "" {
		f, ferr := h.workspace.CreateFile(ws, step.Capture)
		if ferr != nil {
			return 0, ferr
		}
		inv.Stdout = io.MultiWriter(f, vertex.Stdout())
		err = h.executor.Execute(ctx, inv)
		if cerr := f.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to close generated header"), "path", filepath.Join(ws, step.Capture))
		}
		return 0, err
	}

	err = h.executor.Execute(ctx, inv)
	if step.Phase == domain.PhaseConsumerRun {
		var toolErr *domain.ToolError
		if errors.As(err, &toolErr) && toolErr.Exited {
			vertex.Log(domain.LogLevelInfo, "consumer exited with status "+strconv.Itoa(toolErr.ExitCode))
			return toolErr.ExitCode, nil
		}
	}
	return 0, err
}

// fingerprint hashes an artifact for the record. Failures are logged, not fatal.
func (r *run) fingerprint(path string) string {
	sum, err := r.h.hasher.Fingerprint(path)
	if err != nil {
		r.h.logger.Warn("could not fingerprint " + path + ": " + err.Error())
		return ""
	}
	return sum
}

func (r *run) fail(attempted domain.Phase, err error) (Result, error) {
	if ferr := r.state.Fail(attempted); ferr != nil {
		err = errors.Join(err, ferr)
	}
	r.record.FailedAt = attempted
	r.record.ExitCode = domain.ExitCodeOf(err)
	r.record.Error = err.Error()
	return r.finish(), err
}

func (r *run) finish() Result {
	r.record.Phase = r.state.Current()
	r.record.FinishedAt = r.h.now()
	r.h.reporter.RunFinished(r.record)
	return Result{
		ExitCode:  r.record.ExitCode,
		Workspace: r.record.Workspace,
		Phase:     r.record.Phase,
		Record:    r.record,
	}
}
