package domain

import (
	"io"
	"strings"
)

// Invocation is a single external command the harness runs.
type Invocation struct {
	// Phase is the state the run enters once this invocation succeeds.
	Phase Phase
	// Command holds the executable followed by its arguments.
	Command []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env overrides are layered over the process environment.
	Env map[string]string
	// Stdout receives the command's standard output. Nil means the executor's default sink.
	Stdout io.Writer
	// Stderr receives the command's standard error. Nil means the executor's default sink.
	Stderr io.Writer
}

// Tool returns the executable name, or "" for an empty command.
func (inv Invocation) Tool() string {
	if len(inv.Command) == 0 {
		return ""
	}
	return inv.Command[0]
}

// String renders the command line for logs and plans.
func (inv Invocation) String() string {
	quoted := make([]string, len(inv.Command))
	for i, arg := range inv.Command {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
			continue
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
