package harness_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/smoke/internal/core/domain"
	"go.trai.ch/smoke/internal/engine/harness"
)

func renderPlan(steps []harness.Step, ws string) []byte {
	var b strings.Builder
	for i, s := range steps {
		_, _ = fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, s.Phase, s.Describe(ws))
		if s.Invocation.Dir != "" {
			_, _ = fmt.Fprintf(&b, "   in %s\n", s.Invocation.Dir)
		}
	}
	return []byte(b.String())
}

func TestPlan_Golden(t *testing.T) {
	project := domain.DefaultProject()
	project.Root = "/src/smoke"

	tests := []struct {
		name       string
		target     domain.Target
		profile    string
		goldenName string
	}{
		{name: "native debug", target: domain.LinuxTarget(), profile: domain.ProfileDebug, goldenName: "plan_linux"},
		{name: "cross release", target: domain.WindowsTarget(), profile: domain.ProfileRelease, goldenName: "plan_windows_release"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project
			p.Profile = tt.profile
			steps := harness.Plan(p, domain.DefaultToolset(), tt.target, "/tmp/smoke-1")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, renderPlan(steps, "/tmp/smoke-1"))
		})
	}
}

func TestPlan_SameSequenceForEveryTarget(t *testing.T) {
	project := domain.DefaultProject()

	phases := func(steps []harness.Step) []domain.Phase {
		out := make([]domain.Phase, len(steps))
		for i, s := range steps {
			out[i] = s.Phase
		}
		return out
	}

	native := harness.Plan(project, domain.DefaultToolset(), domain.LinuxTarget(), "/ws")
	cross := harness.Plan(project, domain.DefaultToolset(), domain.WindowsTarget(), "/ws")

	want := domain.Phases()[1:6]
	assert.Equal(t, want, phases(native))
	assert.Equal(t, want, phases(cross))
}

func TestPlan_TargetEnvIsShared(t *testing.T) {
	target := domain.WindowsTarget()
	target.Env = map[string]string{"CARGO_TARGET_X86_64_PC_WINDOWS_GNU_LINKER": "x86_64-w64-mingw32-gcc"}

	for _, s := range harness.Plan(domain.DefaultProject(), domain.DefaultToolset(), target, "/ws") {
		if len(s.Invocation.Command) == 0 {
			continue
		}
		assert.Equal(t, target.Env, s.Invocation.Env, s.Phase)
	}
}
