// Package config provides the configuration loader for smoke.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "smoke.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration at path. A missing file yields the built-in
// defaults rooted at the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultFilename
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		l.logger.Info("no " + filepath.Base(path) + " found, using built-in targets")
		cfg := domain.DefaultConfig()
		cfg.Project.Root = filepath.Dir(path)
		return cfg, nil
	}
	return Load(path)
}

// Load reads a configuration file from the given path and merges it over the built-in defaults.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Smokefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != "1" {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, "cannot read config file"), "version", file.Version)
	}

	base := filepath.Dir(path)
	cfg := domain.DefaultConfig()

	cfg.Project.Root = resolve(base, file.Root)
	if file.Journal != "" {
		cfg.Journal = resolve(base, file.Journal)
	}
	applyProject(&cfg.Project, file.Project)
	applyTools(&cfg.Tools, file.Tools)

	for name, dto := range file.Targets {
		t, ok := cfg.Targets[name]
		if !ok {
			t = domain.Target{Name: name}
		}
		cfg.Targets[name] = applyTarget(t, dto)
	}

	if err := cfg.Project.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	for _, name := range cfg.TargetNames() {
		if err := cfg.Targets[name].Validate(); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	return cfg, nil
}

func resolve(base, rel string) string {
	if rel == "" {
		return base
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, rel)
}

func applyProject(p *domain.Project, dto ProjectDTO) {
	setString(&p.LibraryDir, dto.Library)
	setString(&p.LibraryName, dto.LibraryName)
	setString(&p.Header, dto.Header)
	setString(&p.Consumer, dto.Consumer)
	setString(&p.Profile, dto.Profile)
	setString(&p.BinaryBase, dto.Binary)
	if dto.Sources != nil {
		p.Sources = dto.Sources
	}
	if dto.Headers != nil {
		p.Headers = dto.Headers
	}
}

func applyTools(t *domain.Toolset, dto ToolsDTO) {
	if len(dto.Builder) > 0 {
		t.Builder = dto.Builder
	}
	if len(dto.HeaderGen) > 0 {
		t.HeaderGen = dto.HeaderGen
	}
}

func applyTarget(t domain.Target, dto TargetDTO) domain.Target {
	setString(&t.Triple, dto.Triple)
	if dto.Cross != nil {
		t.Cross = *dto.Cross
	}
	if dto.ExeSuffix != nil {
		t.ExeSuffix = *dto.ExeSuffix
	}
	if dto.Compiler != nil {
		t.Compiler = dto.Compiler
	}
	if dto.LinkFlags != nil {
		t.LinkFlags = dto.LinkFlags
	}
	if dto.Runner != nil {
		t.Runner = dto.Runner
	}
	if len(dto.Env) > 0 {
		env := maps.Clone(t.Env)
		if env == nil {
			env = make(map[string]string, len(dto.Env))
		}
		maps.Copy(env, dto.Env)
		t.Env = env
	}
	return t
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
