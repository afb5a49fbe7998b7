package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Target describes one platform a smoke run builds for.
// It is chosen once per run and never mutated.
type Target struct {
	// Name is the short handle used on the command line, e.g. "linux".
	Name string
	// Triple is the platform triple handed to the library build tool.
	Triple string
	// Cross makes the build tool receive an explicit --target and place its
	// output under a triple-specific directory.
	Cross bool
	// Compiler is the C compiler or cross wrapper, with any leading arguments.
	Compiler []string
	// LinkFlags are appended after the library archive on the compile line.
	LinkFlags []string
	// ExeSuffix is appended to the consumer binary name, e.g. ".exe".
	ExeSuffix string
	// Runner is prefixed to the consumer invocation, e.g. ["wine"]. Empty runs it directly.
	Runner []string
	// Env holds extra environment variables for every tool of this target.
	Env map[string]string
}

// BinaryName returns the file name of the consumer executable for this target.
func (t Target) BinaryName(base string) string {
	return base + t.ExeSuffix
}

// Validate reports descriptors that cannot drive a run.
func (t Target) Validate() error {
	if t.Name == "" {
		return zerr.Wrap(ErrInvalidTarget, "target name is empty")
	}
	if len(t.Compiler) == 0 || t.Compiler[0] == "" {
		return zerr.With(zerr.Wrap(ErrInvalidTarget, "target has no compiler"), "target", t.Name)
	}
	if t.Cross && t.Triple == "" {
		return zerr.With(zerr.Wrap(ErrInvalidTarget, "cross target has no triple"), "target", t.Name)
	}
	return nil
}

// Clone returns a deep copy of t.
func (t Target) Clone() Target {
	t.Compiler = slices.Clone(t.Compiler)
	t.LinkFlags = slices.Clone(t.LinkFlags)
	t.Runner = slices.Clone(t.Runner)
	t.Env = maps.Clone(t.Env)
	return t
}

// LinuxTarget is the native Linux descriptor.
func LinuxTarget() Target {
	return Target{
		Name:      "linux",
		Triple:    "x86_64-unknown-linux-gnu",
		Compiler:  []string{"cc"},
		LinkFlags: []string{"-lpthread", "-ldl", "-lm"},
	}
}

// WindowsTarget is the MinGW cross-compile descriptor.
// Rust's windows-gnu static libraries need the Winsock, user-env, bcrypt and ntdll imports.
func WindowsTarget() Target {
	return Target{
		Name:      "windows",
		Triple:    "x86_64-pc-windows-gnu",
		Cross:     true,
		Compiler:  []string{"x86_64-w64-mingw32-gcc"},
		LinkFlags: []string{"-lws2_32", "-luserenv", "-lbcrypt", "-lntdll"},
		ExeSuffix: ".exe",
		Runner:    []string{"wine"},
	}
}

// DefaultTargets returns the built-in descriptors keyed by name.
func DefaultTargets() map[string]Target {
	linux := LinuxTarget()
	windows := WindowsTarget()
	return map[string]Target{
		linux.Name:   linux,
		windows.Name: windows,
	}
}
