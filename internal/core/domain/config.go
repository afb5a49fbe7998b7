package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Config is the fully resolved harness configuration.
type Config struct {
	Project Project
	Tools   Toolset
	Targets map[string]Target
	// Journal is the run journal file. Empty disables journaling.
	Journal string
}

// DefaultConfig returns the built-in project, tools and targets.
func DefaultConfig() *Config {
	return &Config{
		Project: DefaultProject(),
		Tools:   DefaultToolset(),
		Targets: DefaultTargets(),
	}
}

// Target looks up a descriptor by name.
func (c *Config) Target(name string) (Target, error) {
	t, ok := c.Targets[name]
	if !ok {
		return Target{}, zerr.With(zerr.Wrap(ErrUnknownTarget, "no descriptor for target"), "target", name)
	}
	return t.Clone(), nil
}

// TargetNames returns the known target names in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
