// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/smoke/internal/core/ports"
)

// messager matches zerr errors, which can report their own message without the chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger instance writing human-readable text to stderr.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		logger: slog.New(newHandler(w)),
	}
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(w))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := causeChain(err)
	if len(chain) == 1 {
		l.logger.Error(chain[0])
		return
	}
	l.logger.Error(chain[0], "caused_by", strings.Join(chain[1:], " -> "))
}

// causeChain walks err and returns one message per layer.
// Layers without their own message (stdlib errors) end the walk with their full text.
func causeChain(err error) []string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		if msg := m.Message(); msg != "" {
			messages = append(messages, msg)
		}
		current = errors.Unwrap(current)
	}
	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}
	return messages
}
