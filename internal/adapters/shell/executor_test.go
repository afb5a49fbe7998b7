package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smoke/internal/adapters/shell"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("line1").Times(1),
		mockLogger.EXPECT().Info("line2").Times(1),
	)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "echo line1; echo line2"},
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	// The writer buffers until newline, so both fragments arrive as one line.
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"},
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_TrailingPartialLineIsFlushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "printf 'no newline'"},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_StderrGoesToWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("oops").Times(1)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "echo oops >&2"},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test-value-123").Times(1)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "echo $MY_TEST_VAR"},
		Env:     map[string]string{"MY_TEST_VAR": "test-value-123"},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_ExplicitWriters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Logger must stay untouched when the invocation brings its own sinks.
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "echo to-stdout; echo to-stderr >&2"},
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	require.NoError(t, err)

	assert.Equal(t, "to-stdout\n", stdout.String())
	assert.Equal(t, "to-stderr\n", stderr.String())
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	dir := t.TempDir()
	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "touch marker && ls"},
		Dir:     dir,
		Stdout:  &stdout,
	})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "marker")
	assert.FileExists(t, filepath.Join(dir, "marker"))
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "exit 42"},
	})
	require.Error(t, err)

	var toolErr *domain.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 42, toolErr.ExitCode)
	assert.True(t, toolErr.Exited)
	assert.Equal(t, "sh", toolErr.Tool)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"nonexistent-command-xyz123"},
	})
	require.Error(t, err)

	var toolErr *domain.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, domain.ExitCodeNotFound, toolErr.ExitCode)
	assert.False(t, toolErr.Exited)
}

func TestExecutor_Execute_MissingRelativeBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{filepath.Join(t.TempDir(), "missing")},
	})

	assert.Equal(t, domain.ExitCodeNotFound, domain.ExitCodeOf(err))
}

func TestExecutor_Execute_NotExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))

	err := executor.Execute(context.Background(), domain.Invocation{Command: []string{path}})

	assert.Equal(t, domain.ExitCodeNotExecutable, domain.ExitCodeOf(err))
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{})
	require.Error(t, err)
	assert.Equal(t, domain.ExitCodeGeneric, domain.ExitCodeOf(err))
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test").Times(1)

	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"/bin/sh", "-c", "echo test"},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_PathOverrideFindsTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("success").Times(1)

	executor := shell.NewExecutor(mockLogger)

	toolDir := t.TempDir()
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, "my-cross-gcc"), []byte("#!/bin/sh\necho success\n"), 0o700))

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"my-cross-gcc"},
		Env:     map[string]string{"PATH": toolDir},
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Execute(ctx, domain.Invocation{Command: []string{"sh", "-c", "sleep 5"}})
	require.Error(t, err)
	assert.NotZero(t, domain.ExitCodeOf(err))
}

func TestExecutor_Execute_KilledBySignal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	err := executor.Execute(context.Background(), domain.Invocation{
		Command: []string{"sh", "-c", "kill -TERM $$"},
	})
	require.Error(t, err)

	var toolErr *domain.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 128+int(syscall.SIGTERM), toolErr.ExitCode)
	assert.False(t, toolErr.Exited)
	assert.Equal(t, 143, domain.ExitCodeOf(err))
}
