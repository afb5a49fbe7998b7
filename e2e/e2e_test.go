//go:build e2e

package e2e_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var smokeBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "smoke-e2e-*")
	if err != nil {
		panic(err)
	}

	smokeBinary = filepath.Join(tmpDir, "smoke")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", smokeBinary, "./cmd/smoke")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build smoke binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"exitstatus": exitStatus,
		},
	})
}

// exitStatus runs a command and fails unless it exits with the given status.
// Usage: exitstatus N command [args...]
func exitStatus(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! exitstatus")
	}
	if len(args) < 2 {
		ts.Fatalf("usage: exitstatus N command [args...]")
	}
	want, err := strconv.Atoi(args[0])
	ts.Check(err)

	got := 0
	if err := ts.Exec(args[1], args[2:]...); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			ts.Fatalf("%s: %v", args[1], err)
		}
		got = exitErr.ExitCode()
	}
	if got != want {
		ts.Fatalf("%s exited with status %d, want %d", args[1], got, want)
	}
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	// Fake toolchain scripts from the archive go first on PATH.
	binDir := filepath.Dir(smokeBinary)
	fakeDir := filepath.Join(env.WorkDir, "bin")
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", fakeDir+string(os.PathListSeparator)+binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TMPDIR", filepath.Join(env.WorkDir, ".tmp"))

	return os.MkdirAll(filepath.Join(env.WorkDir, ".tmp"), 0o750)
}
