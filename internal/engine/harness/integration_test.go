package harness_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smoke/internal/adapters/fs"
	"go.trai.ch/smoke/internal/adapters/linear"
	"go.trai.ch/smoke/internal/adapters/logger"
	"go.trai.ch/smoke/internal/adapters/shell"
	"go.trai.ch/smoke/internal/adapters/telemetry"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/engine/harness"
)

// Fake toolchain. Each script checks what the real tool would need and leaves
// the same artifacts behind.
const (
	fakeCargo = `#!/bin/sh
[ "$1" = build ] || exit 2
[ -n "$FAKE_CARGO_STATUS" ] && exit "$FAKE_CARGO_STATUS"
dir=target
[ "$2" = --target ] && dir="target/$3"
mkdir -p "$dir/debug"
echo archive > "$dir/debug/librust_lib.a"
`
	fakeCbindgen = `#!/bin/sh
[ -n "$FAKE_CBINDGEN_STATUS" ] && exit "$FAKE_CBINDGEN_STATUS"
echo '#include <stdint.h>'
echo 'const char *get_rust_str(void);'
`
	// The compiler refuses to work in a dirty workspace and requires every input.
	fakeCC = `#!/bin/sh
[ -e leftover ] && exit 9
for f in main.c c_lib.c c_lib.h rust_lib.h; do [ -f "$f" ] || exit 8; done
out=
archive=
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift ;;
    *.a) archive="$1" ;;
  esac
  shift
done
[ -f "$archive" ] || exit 7
printf '#!/bin/sh\necho "Rust function! C function!"\ntouch leftover\n[ -n "$FAKE_CONSUMER_SIGNAL" ] && kill -"$FAKE_CONSUMER_SIGNAL" $$\nexit ${FAKE_CONSUMER_STATUS:-0}\n' > "$out"
chmod +x "$out"
`
)

type toolchain struct {
	project domain.Project
	bin     string
	out     bytes.Buffer
	h       *harness.Harness
}

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(path, []byte(content), 0o700))
}

func newToolchain(t *testing.T) *toolchain {
	t.Helper()
	tc := &toolchain{bin: t.TempDir()}

	writeScript(t, filepath.Join(tc.bin, "cargo"), fakeCargo)
	writeScript(t, filepath.Join(tc.bin, "cbindgen"), fakeCbindgen)
	writeScript(t, filepath.Join(tc.bin, "fake-cc"), fakeCC)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "rust_lib", "src"), 0o750))
	for name, content := range map[string]string{
		"rust_lib/src/lib.rs": "pub extern \"C\" fn get_rust_str() {}\n",
		"main.c":              "#include \"rust_lib.h\"\n#include \"c_lib.h\"\nint main(void) { return 0; }\n",
		"c_lib.c":             "const char *get_c_str(void) { return \"C function!\"; }\n",
		"c_lib.h":             "const char *get_c_str(void);\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o600))
	}

	tc.project = domain.DefaultProject()
	tc.project.Root = root

	t.Setenv("NO_COLOR", "1")
	log := logger.NewWithWriter(&tc.out)
	tc.h = harness.New(
		shell.NewExecutor(log),
		fs.NewWorkspace(),
		fs.NewHasher(),
		telemetry.NewNoop(),
		linear.NewReporter(&tc.out, &tc.out),
		log,
	)
	return tc
}

func (tc *toolchain) target(base domain.Target, env map[string]string) domain.Target {
	t := base.Clone()
	t.Compiler = []string{"fake-cc"}
	t.Runner = nil
	t.Env = map[string]string{"PATH": tc.bin}
	for k, v := range env {
		t.Env[k] = v
	}
	return t
}

func (tc *toolchain) run(t *testing.T, target domain.Target) (harness.Result, error) {
	t.Helper()
	return tc.h.Run(context.Background(), tc.project, domain.DefaultToolset(), target,
		harness.WithWorkspaceRoot(filepath.Join(tc.project.Root, "runs")))
}

func TestIntegration_NativeRunReportsConsumerStatus(t *testing.T) {
	tc := newToolchain(t)

	res, err := tc.run(t, tc.target(domain.LinuxTarget(), map[string]string{"FAKE_CONSUMER_STATUS": "4"}))
	require.NoError(t, err)

	assert.Equal(t, 4, res.ExitCode)
	assert.Equal(t, domain.PhaseDone, res.Phase)
	assert.Contains(t, tc.out.String(), "Rust function! C function!")

	header, err := os.ReadFile(filepath.Join(res.Workspace, "rust_lib.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "get_rust_str")

	assert.Len(t, res.Record.HeaderHash, 16)
	assert.Len(t, res.Record.ArchiveHash, 16)
}

func TestIntegration_EveryRunGetsAFreshWorkspace(t *testing.T) {
	tc := newToolchain(t)
	target := tc.target(domain.LinuxTarget(), nil)

	first, err := tc.run(t, target)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(first.Workspace, "leftover"))

	// The fake compiler exits 9 if it sees the previous run's leftover.
	second, err := tc.run(t, target)
	require.NoError(t, err)

	assert.NotEqual(t, first.Workspace, second.Workspace)
	assert.Equal(t, 0, second.ExitCode)
}

func TestIntegration_CrossTargetSharesTheSequence(t *testing.T) {
	tc := newToolchain(t)

	native, err := tc.run(t, tc.target(domain.LinuxTarget(), nil))
	require.NoError(t, err)
	cross, err := tc.run(t, tc.target(domain.WindowsTarget(), nil))
	require.NoError(t, err)

	assert.Equal(t, native.Phase, cross.Phase)
	assert.FileExists(t, filepath.Join(native.Workspace, "main"))
	assert.FileExists(t, filepath.Join(cross.Workspace, "main.exe"))
	assert.FileExists(t, filepath.Join(tc.project.Root, "rust_lib", "target", "x86_64-pc-windows-gnu", "debug", "librust_lib.a"))
}

func TestIntegration_LibraryBuildFailure(t *testing.T) {
	tc := newToolchain(t)

	res, err := tc.run(t, tc.target(domain.LinuxTarget(), map[string]string{"FAKE_CARGO_STATUS": "101"}))
	require.Error(t, err)

	assert.Equal(t, 101, res.ExitCode)
	assert.Equal(t, domain.PhaseLibraryBuilt, res.Record.FailedAt)
	assert.NoFileExists(t, filepath.Join(res.Workspace, "rust_lib.h"))
	assert.NoFileExists(t, filepath.Join(res.Workspace, "main.c"))
}

func TestIntegration_HeaderFailure(t *testing.T) {
	tc := newToolchain(t)

	res, err := tc.run(t, tc.target(domain.LinuxTarget(), map[string]string{"FAKE_CBINDGEN_STATUS": "3"}))
	require.Error(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, domain.PhaseHeaderGenerated, res.Record.FailedAt)
	assert.NoFileExists(t, filepath.Join(res.Workspace, "main.c"))
	assert.NoFileExists(t, filepath.Join(res.Workspace, "main"))
}

func TestIntegration_WindowsMissingCrossCompiler(t *testing.T) {
	tc := newToolchain(t)
	target := tc.target(domain.WindowsTarget(), nil)
	target.Compiler = []string{"x86_64-w64-mingw32-gcc-smoke-missing"}
	target.Runner = []string{"wine"}

	res, err := tc.run(t, target)
	require.Error(t, err)

	assert.Equal(t, domain.ExitCodeNotFound, res.ExitCode)
	assert.Equal(t, domain.PhaseConsumerCompiled, res.Record.FailedAt)
	assert.FileExists(t, filepath.Join(res.Workspace, "main.c"))
	assert.NoFileExists(t, filepath.Join(res.Workspace, "main.exe"))
	assert.NoFileExists(t, filepath.Join(res.Workspace, "leftover"))
}

func TestIntegration_ConsumerKilledBySignal(t *testing.T) {
	tc := newToolchain(t)

	res, err := tc.run(t, tc.target(domain.LinuxTarget(), map[string]string{"FAKE_CONSUMER_SIGNAL": "TERM"}))
	require.Error(t, err)

	assert.Equal(t, 143, res.ExitCode)
	assert.Equal(t, domain.PhaseFailed, res.Phase)
	assert.Equal(t, domain.PhaseConsumerRun, res.Record.FailedAt)
}
