package harness

import (
	"path/filepath"
	"slices"

	"go.trai.ch/smoke/internal/core/domain"
)

// Step is one stage of a smoke run.
type Step struct {
	// Phase is the state the run enters once the step succeeds.
	Phase domain.Phase
	// Invocation is the external command to run. It is empty for the copy step.
	Invocation domain.Invocation
	// Capture names the workspace file that receives the command's stdout.
	Capture string
	// Copies lists the files copied into the workspace.
	Copies []string
}

// Plan returns the steps a run of project p for target t would perform in workspace ws.
// Every target gets the same five steps in the same order; only the invocations differ.
func Plan(p domain.Project, tools domain.Toolset, t domain.Target, ws string) []Step {
	env := t.Clone().Env

	build := slices.Concat(tools.Builder, []string{"build"})
	if t.Cross {
		build = append(build, "--target", t.Triple)
	}
	if p.Profile == domain.ProfileRelease {
		build = append(build, "--release")
	}

	copies := make([]string, 0, len(p.WorkspaceFiles()))
	for _, f := range p.WorkspaceFiles() {
		copies = append(copies, p.Path(f))
	}

	compile := slices.Clone(t.Compiler)
	compile = append(compile, filepath.Base(p.Consumer))
	for _, src := range p.Sources {
		compile = append(compile, filepath.Base(src))
	}
	compile = append(compile, "-I.", p.ArchivePath(t))
	compile = append(compile, t.LinkFlags...)
	compile = append(compile, "-o", t.BinaryName(p.BinaryBase))

	run := slices.Concat(t.Runner, []string{filepath.Join(ws, t.BinaryName(p.BinaryBase))})

	return []Step{
		{
			Phase: domain.PhaseLibraryBuilt,
			Invocation: domain.Invocation{
				Phase:   domain.PhaseLibraryBuilt,
				Command: build,
				Dir:     p.LibraryPath(),
				Env:     env,
			},
		},
		{
			Phase: domain.PhaseHeaderGenerated,
			Invocation: domain.Invocation{
				Phase:   domain.PhaseHeaderGenerated,
				Command: slices.Concat(tools.HeaderGen, []string{p.LibraryPath()}),
				Dir:     p.Root,
				Env:     env,
			},
			Capture: p.Header,
		},
		{
			Phase:  domain.PhaseWorkspaceAssembled,
			Copies: copies,
		},
		{
			Phase: domain.PhaseConsumerCompiled,
			Invocation: domain.Invocation{
				Phase:   domain.PhaseConsumerCompiled,
				Command: compile,
				Dir:     ws,
				Env:     env,
			},
		},
		{
			Phase: domain.PhaseConsumerRun,
			Invocation: domain.Invocation{
				Phase:   domain.PhaseConsumerRun,
				Command: run,
				Dir:     ws,
				Env:     env,
			},
		},
	}
}

// Describe renders the step as a single shell-like line.
func (s Step) Describe(ws string) string {
	switch {
	case len(s.Invocation.Command) > 0 && s.Capture != "":
		return s.Invocation.String() + " > " + filepath.Join(ws, s.Capture)
	case len(s.Invocation.Command) > 0:
		return s.Invocation.String()
	default:
		return domain.Invocation{Command: slices.Concat([]string{"cp"}, s.Copies, []string{ws})}.String()
	}
}
