package ports

import (
	"io"
	"time"

	"go.trai.ch/smoke/internal/core/domain"
)

// Reporter shows run progress to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// RunStarted announces the target and its workspace.
	RunStarted(target domain.Target, workspace string)
	// StepStarted announces the step that will move the run into phase.
	StepStarted(phase domain.Phase, command string)
	// StepOutput returns the sinks for the step's tool output.
	StepOutput(phase domain.Phase) (stdout, stderr io.Writer)
	// StepFinished reports the outcome of a step.
	StepFinished(phase domain.Phase, elapsed time.Duration, err error)
	// RunFinished summarizes the run.
	RunFinished(rec domain.RunRecord)
}
