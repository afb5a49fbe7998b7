package domain

import (
	"errors"
	"fmt"
)

// Conventional shell statuses for tools that never produced an exit status of their own.
const (
	// ExitCodeGeneric is used for failures that have no process status.
	ExitCodeGeneric = 1
	// ExitCodeNotExecutable mirrors the shell status for a file that cannot be executed.
	ExitCodeNotExecutable = 126
	// ExitCodeNotFound mirrors the shell status for a command that does not exist.
	ExitCodeNotFound = 127
)

// ToolError reports that an external command did not succeed.
type ToolError struct {
	Tool     string
	ExitCode int
	// Exited is true when the process ran and reported ExitCode itself,
	// false when it could not be started or was killed.
	Exited bool
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with status %d: %v", e.Tool, e.ExitCode, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// StepError ties a failure to the phase that was being attempted.
type StepError struct {
	Phase Phase
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Phase, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the status a failed run should exit with.
// Tool failures keep the tool's own status; anything else maps to ExitCodeGeneric.
// A nil error yields zero.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode != 0 {
		return toolErr.ExitCode
	}
	return ExitCodeGeneric
}
