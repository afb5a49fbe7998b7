// Package app implements the application layer for smoke.
package app

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/smoke/internal/engine/harness"
	"go.trai.ch/zerr"
)

// RunOptions configures a smoke invocation.
type RunOptions struct {
	// ConfigPath is the smoke.yaml to load. A missing file means built-in defaults.
	ConfigPath string
	// Release builds the library with the release profile.
	Release bool
	// WorkspaceRoot is where per-run workspaces are created. Empty uses the system temp dir.
	WorkspaceRoot string
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	journals     ports.JournalOpener
	harness      *harness.Harness
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	journals ports.JournalOpener,
	h *harness.Harness,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		journals:     journals,
		harness:      h,
		logger:       logger,
	}
}

// Run smoke tests each named target in order and returns the process exit status.
// A failing step stops everything and the error is joined with domain.ErrRunFailed.
// Consumers that exit non-zero do not stop later targets; the first such status is returned.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) (int, error) {
	if len(targetNames) == 0 {
		return domain.ExitCodeGeneric, domain.ErrNoTargetsSpecified
	}

	cfg, err := a.load(opts)
	if err != nil {
		return domain.ExitCodeGeneric, err
	}

	// Resolve every descriptor before the first run starts.
	targets := make([]domain.Target, 0, len(targetNames))
	for _, name := range targetNames {
		t, err := cfg.Target(name)
		if err != nil {
			return domain.ExitCodeGeneric, err
		}
		targets = append(targets, t)
	}

	journal, err := a.journals.Open(cfg.Journal)
	if err != nil {
		return domain.ExitCodeGeneric, zerr.Wrap(err, "failed to open run journal")
	}

	status := 0
	for _, t := range targets {
		res, err := a.harness.Run(ctx, cfg.Project, cfg.Tools, t, harness.WithWorkspaceRoot(opts.WorkspaceRoot))

		if res.Record.Target != "" {
			if jerr := journal.Append(res.Record); jerr != nil {
				a.logger.Warn("failed to record run: " + jerr.Error())
			}
		}

		if err != nil {
			wrapped := zerr.With(zerr.Wrap(err, "smoke run failed"), "target", t.Name)
			return res.ExitCode, errors.Join(domain.ErrRunFailed, wrapped)
		}
		if status == 0 {
			status = res.ExitCode
		}
	}
	return status, nil
}

// Plan returns the steps a run of targetName would perform, without running anything.
// The workspace is shown as the pattern a real run would create.
func (a *App) Plan(targetName string, opts RunOptions) ([]harness.Step, string, error) {
	cfg, err := a.load(opts)
	if err != nil {
		return nil, "", err
	}

	t, err := cfg.Target(targetName)
	if err != nil {
		return nil, "", err
	}

	project := cfg.Project
	if root, err := filepath.Abs(project.Root); err == nil {
		project.Root = root
	}

	wsRoot := opts.WorkspaceRoot
	if wsRoot == "" {
		wsRoot = "$TMPDIR"
	}
	ws := filepath.Join(wsRoot, "smoke-*")

	return harness.Plan(project, cfg.Tools, t, ws), ws, nil
}

// Targets returns every known target descriptor, sorted by name.
func (a *App) Targets(opts RunOptions) ([]domain.Target, error) {
	cfg, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0, len(cfg.Targets))
	for _, name := range cfg.TargetNames() {
		t, _ := cfg.Target(name)
		targets = append(targets, t)
	}
	return targets, nil
}

// History returns the recorded runs and the journal they came from.
// An empty path means journaling is disabled.
func (a *App) History(opts RunOptions) ([]domain.RunRecord, string, error) {
	cfg, err := a.load(opts)
	if err != nil {
		return nil, "", err
	}

	journal, err := a.journals.Open(cfg.Journal)
	if err != nil {
		return nil, cfg.Journal, zerr.Wrap(err, "failed to open run journal")
	}

	records, err := journal.List()
	if err != nil {
		return nil, cfg.Journal, zerr.Wrap(err, "failed to read run journal")
	}
	return records, cfg.Journal, nil
}

func (a *App) load(opts RunOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Release {
		cfg.Project.Profile = domain.ProfileRelease
	}
	return cfg, nil
}
