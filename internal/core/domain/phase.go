package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Phase is a state of the smoke-run state machine.
type Phase string

const (
	PhaseStart              Phase = "START"
	PhaseLibraryBuilt       Phase = "LIBRARY_BUILT"
	PhaseHeaderGenerated    Phase = "HEADER_GENERATED"
	PhaseWorkspaceAssembled Phase = "WORKSPACE_ASSEMBLED"
	PhaseConsumerCompiled   Phase = "CONSUMER_COMPILED"
	PhaseConsumerRun        Phase = "CONSUMER_RUN"
	PhaseDone               Phase = "DONE"
	PhaseFailed             Phase = "FAILED"
)

// phaseOrder is the only successful path through the machine.
var phaseOrder = []Phase{
	PhaseStart,
	PhaseLibraryBuilt,
	PhaseHeaderGenerated,
	PhaseWorkspaceAssembled,
	PhaseConsumerCompiled,
	PhaseConsumerRun,
	PhaseDone,
}

// Phases returns the successful phase sequence in order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

// Step returns the human name of the step that moves a run into p.
func (p Phase) Step() string {
	switch p {
	case PhaseLibraryBuilt:
		return "build library"
	case PhaseHeaderGenerated:
		return "generate header"
	case PhaseWorkspaceAssembled:
		return "assemble workspace"
	case PhaseConsumerCompiled:
		return "compile consumer"
	case PhaseConsumerRun:
		return "run consumer"
	default:
		return strings.ToLower(string(p))
	}
}

// IsTerminal reports whether no further transition is allowed.
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// Next returns the phase that follows p on the successful path.
func (p Phase) Next() (Phase, bool) {
	for i, ph := range phaseOrder {
		if ph == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Phase) bool {
	if from.IsTerminal() {
		return false
	}
	if to == PhaseFailed {
		return true
	}
	next, ok := from.Next()
	return ok && next == to
}

// RunState tracks the current phase of a single run.
// The zero value is not usable; use NewRunState.
type RunState struct {
	current Phase
	failed  Phase
	history []Phase
}

// NewRunState returns a state machine positioned at PhaseStart.
func NewRunState() *RunState {
	return &RunState{
		current: PhaseStart,
		history: []Phase{PhaseStart},
	}
}

// Current returns the current phase.
func (s *RunState) Current() Phase {
	return s.current
}

// FailedAt returns the phase that was being attempted when the run failed, if any.
func (s *RunState) FailedAt() Phase {
	return s.failed
}

// History returns every phase the run has entered, in order.
func (s *RunState) History() []Phase {
	out := make([]Phase, len(s.history))
	copy(out, s.history)
	return out
}

// Advance moves to the next phase on the successful path.
func (s *RunState) Advance(to Phase) error {
	if to == PhaseFailed || !CanTransition(s.current, to) {
		return s.invalid(to)
	}
	s.current = to
	s.history = append(s.history, to)
	return nil
}

// Fail moves to PhaseFailed, remembering which phase was being attempted.
func (s *RunState) Fail(attempted Phase) error {
	if !CanTransition(s.current, PhaseFailed) {
		return s.invalid(PhaseFailed)
	}
	s.failed = attempted
	s.current = PhaseFailed
	s.history = append(s.history, PhaseFailed)
	return nil
}

func (s *RunState) invalid(to Phase) error {
	return zerr.With(
		zerr.With(zerr.Wrap(ErrInvalidTransition, "state machine rejected move"), "from", string(s.current)),
		"to", string(to),
	)
}
