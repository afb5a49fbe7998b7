// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// signalExitBase is added to the signal number for processes killed by a signal.
const signalExitBase = 128

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the invocation and waits for it to exit.
// The environment is os.Environ() overlaid with inv.Env; the executable is
// looked up on the resulting PATH. Output goes to inv.Stdout/inv.Stderr, or
// line by line to the logger when those are nil.
func (e *Executor) Execute(ctx context.Context, inv domain.Invocation) error {
	if len(inv.Command) == 0 {
		return &domain.ToolError{ExitCode: domain.ExitCodeGeneric, Err: domain.ErrEmptyCommand}
	}

	name := inv.Command[0]
	args := inv.Command[1:]
	env := resolveEnvironment(os.Environ(), inv.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		lp, err := lookPath(name, env)
		if err != nil {
			return &domain.ToolError{
				Tool:     name,
				ExitCode: domain.ExitCodeNotFound,
				Err:      zerr.With(zerr.Wrap(err, "executable not found"), "tool", name),
			}
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // commands come from the harness configuration
	// Keep the name as invoked in argv[0].
	cmd.Args[0] = name
	cmd.Dir = inv.Dir
	cmd.Env = env

	stdout := inv.Stdout
	var stdoutLog, stderrLog *logWriter
	if stdout == nil {
		stdoutLog = &logWriter{emit: e.logger.Info}
		stdout = stdoutLog
	}
	stderr := inv.Stderr
	if stderr == nil {
		stderrLog = &logWriter{emit: e.logger.Warn}
		stderr = stderrLog
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	if stdoutLog != nil {
		stdoutLog.Flush()
	}
	if stderrLog != nil {
		stderrLog.Flush()
	}

	if runErr != nil {
		code, exited := exitCodeFor(runErr)
		return &domain.ToolError{
			Tool:     name,
			ExitCode: code,
			Exited:   exited,
			Err:      zerr.With(zerr.Wrap(runErr, "command failed"), "exit_code", code),
		}
	}
	return nil
}

// exitCodeFor maps a run error onto the status a shell would report,
// and whether that status came from the process itself.
func exitCodeFor(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code, true
		}
		// Killed by a signal: report it the way a shell does.
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return signalExitBase + int(status.Signal()), false
		}
		return domain.ExitCodeGeneric, false
	}
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return domain.ExitCodeNotFound, false
	case errors.Is(err, fs.ErrPermission):
		return domain.ExitCodeNotExecutable, false
	default:
		return domain.ExitCodeGeneric, false
	}
}

// logWriter forwards complete lines to a logger function.
type logWriter struct {
	emit func(string)

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

// resolveEnvironment overlays overrides onto the system environment.
// PATH overrides are prepended to the system PATH rather than replacing it.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" && v != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return fs.ErrPermission
}
