// Package linear provides a synchronous, line-buffered progress reporter.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter for terminals and CI logs alike.
// Tool output is printed line by line with a "[target step]" prefix.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu     sync.Mutex
	target string
	open   []*lineWriter
}

// NewReporter creates a new Reporter. Nil writers default to os.Stdout and os.Stderr.
func NewReporter(stdout, stderr io.Writer) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		output: termenv.NewOutput(stderr, termenv.WithProfile(colorProfile(stderr))),
	}
}

// colorProfile returns the color profile based on environment.
// Colors are dropped for NO_COLOR, for CI logs and when w is a file that is not a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// RunStarted prints the target and its workspace.
func (r *Reporter) RunStarted(target domain.Target, workspace string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.target = target.Name
	prefix := r.output.String(fmt.Sprintf("[%s]", target.Name)).Bold().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Smoke testing %s in %s\n", prefix, target.Triple, workspace)
}

// StepStarted prints the command about to run.
func (r *Reporter) StepStarted(phase domain.Phase, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(r.prefixLocked(phase)).Faint().String()
	if command == "" {
		_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s $ %s\n", prefix, command)
}

// StepOutput returns prefixed, line-buffered writers for the step's tool output.
func (r *Reporter) StepOutput(phase domain.Phase) (stdout, stderr io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.prefixLocked(phase)
	out := &lineWriter{r: r, dst: r.stdout, prefix: prefix}
	errw := &lineWriter{r: r, dst: r.stderr, prefix: prefix}
	r.open = append(r.open, out, errw)
	return out, errw
}

// StepFinished flushes the step's output and prints its outcome.
func (r *Reporter) StepFinished(phase domain.Phase, elapsed time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked()

	prefix := r.prefixLocked(phase)
	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, elapsed.Round(time.Millisecond), err)
		return
	}
	symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, elapsed.Round(time.Millisecond))
}

// RunFinished prints a one-line summary of the run.
func (r *Reporter) RunFinished(rec domain.RunRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked()

	prefix := fmt.Sprintf("[%s]", rec.Target)
	duration := rec.Duration().Round(time.Millisecond)
	if !rec.Succeeded() {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		cause := ""
		if rec.FailedAt == domain.PhaseStart && rec.Error != "" {
			// No step ran, so nothing else has shown the cause.
			cause = ": " + rec.Error
		}
		_, _ = fmt.Fprintf(r.stderr, "%s %s Stopped at %s (%s) with status %d after %v%s\n",
			prefix, symbol, rec.FailedAt, rec.FailedAt.Step(), rec.ExitCode, duration, cause)
		return
	}

	symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
	if rec.ExitCode != 0 {
		symbol = r.output.String("!").Foreground(termenv.ANSIYellow).String()
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s Consumer exited with status %d after %v\n",
		prefix, symbol, rec.ExitCode, duration)
}

func (r *Reporter) prefixLocked(phase domain.Phase) string {
	return fmt.Sprintf("[%s %s]", r.target, phase.Step())
}

// flushLocked prints every pending partial line. Must be called with r.mu held.
func (r *Reporter) flushLocked() {
	for _, w := range r.open {
		w.flushLocked()
	}
	r.open = r.open[:0]
}

// lineWriter buffers tool output and prints complete lines with a prefix.
type lineWriter struct {
	r      *Reporter
	dst    io.Writer
	prefix string
	buf    bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back.
			w.buf.Reset()
			w.buf.Write(line)
			break
		}
		w.printLocked(line)
	}
	return len(p), nil
}

func (w *lineWriter) flushLocked() {
	if w.buf.Len() > 0 {
		w.printLocked(w.buf.Bytes())
		w.buf.Reset()
	}
}

func (w *lineWriter) printLocked(line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	_, _ = fmt.Fprintf(w.dst, "%s %s\n", w.prefix, line)
}
