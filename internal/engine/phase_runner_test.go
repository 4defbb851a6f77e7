package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/registry"
	"github.com/vk/phaserun/internal/testutil"
)

func TestRunPhase_GroupsRunInDependencyOrder(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())

	second := testutil.SequentialGroup("noop", "b1")
	second.DependsOn = []string{"g_first"}

	plan := testutil.NewPlan()
	plan.Phases["phase_1"] = &config.Phase{
		Groups: map[string]*config.Group{
			"g_second": second,
			"g_first":  testutil.SequentialGroup("noop", "a1"),
		},
	}

	orch, recorder := newTestOrchestrator(plan, reg, Options{})
	_, err := orch.RunAll(context.Background())
	require.NoError(t, err)

	events := recorder.Events()
	firstIdx, secondIdx := -1, -1
	for i, e := range events {
		switch e {
		case "group:start g_first":
			firstIdx = i
		case "group:start g_second":
			secondIdx = i
		}
	}
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx)
}

func TestRunPhase_SkipsGroupWithFailedPrerequisite(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())
	reg.RegisterTaskHandler("broken", testutil.FailHandler("boom"))

	dependent := testutil.SequentialGroup("noop", "b1")
	dependent.DependsOn = []string{"g_base"}

	plan := testutil.NewPlan()
	plan.Phases["phase_1"] = &config.Phase{
		Groups: map[string]*config.Group{
			"g_base":      testutil.SequentialGroup("broken", "a1"),
			"g_dependent": dependent,
		},
	}

	orch, recorder := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	assert.Contains(t, results, "a1")
	assert.NotContains(t, results, "b1")
	assert.False(t, recorder.Has("group:start g_dependent"))
}

func TestRunOne_GroupFilterRunsOnlyThatGroup(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())

	plan := testutil.NewPlan()
	plan.Phases["phase_1"] = &config.Phase{
		Groups: map[string]*config.Group{
			"g_a": testutil.SequentialGroup("noop", "a1"),
			"g_b": testutil.SequentialGroup("noop", "b1"),
		},
	}

	orch, _ := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunOne(context.Background(), "phase_1", "g_b")

	require.NoError(t, err)
	assert.Contains(t, results, "b1")
	assert.NotContains(t, results, "a1")
}

func TestRunOne_GroupFilterSkipsWhenPrerequisiteNeverRan(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())

	dependent := testutil.SequentialGroup("noop", "b1")
	dependent.DependsOn = []string{"g_a"}

	plan := testutil.NewPlan()
	plan.Phases["phase_1"] = &config.Phase{
		Groups: map[string]*config.Group{
			"g_a": testutil.SequentialGroup("noop", "a1"),
			"g_b": dependent,
		},
	}

	orch, _ := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunOne(context.Background(), "phase_1", "g_b")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunOne_UnknownGroup(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())

	plan := singlePhasePlan(testutil.SequentialGroup("noop", "t1"))

	orch, _ := newTestOrchestrator(plan, reg, Options{})
	_, err := orch.RunOne(context.Background(), "phase_1", "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `group "ghost" not found`)
}

func TestRunPhase_GroupFailureWithoutFailFastContinues(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("noop", testutil.OKHandler())
	reg.RegisterTaskHandler("broken", testutil.FailHandler("boom"))

	plan := testutil.NewPlan()
	plan.Phases["phase_1"] = &config.Phase{
		Groups: map[string]*config.Group{
			"g_a": testutil.SequentialGroup("broken", "a1"),
			"g_b": testutil.SequentialGroup("noop", "b1"),
		},
	}

	orch, recorder := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	assert.Contains(t, results, "b1")
	assert.True(t, recorder.Has("phase:complete phase_1 success=true"))
}
