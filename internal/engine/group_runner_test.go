package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/registry"
	"github.com/vk/phaserun/internal/testutil"
)

func TestSequentialGroup_FailFastSkipsRemainingTasks(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var dispatched []string
	reg := registry.New()
	reg.RegisterTaskHandler("step", testutil.HandlerFunc(
		func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
			mu.Lock()
			dispatched = append(dispatched, task.ID)
			mu.Unlock()
			success := task.ID != "t2"
			return &config.TaskResult{TaskID: task.ID, Success: success, Error: "failed"}, nil
		}))

	plan := singlePhasePlan(testutil.SequentialGroup("step", "t1", "t2", "t3"))
	plan.Settings.FailFast = true

	orch, _ := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunAll(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"t1", "t2"}, dispatched)
	assert.Contains(t, results, "t1")
	assert.Contains(t, results, "t2")
	assert.NotContains(t, results, "t3")
}

func TestSequentialGroup_WithoutFailFastRunsAllTasks(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("step", testutil.HandlerFunc(
		func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
			return &config.TaskResult{TaskID: task.ID, Success: task.ID != "t2"}, nil
		}))

	plan := singlePhasePlan(testutil.SequentialGroup("step", "t1", "t2", "t3"))

	orch, _ := newTestOrchestrator(plan, reg, Options{})
	results, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results["t3"].Success)
}

func TestParallelGroup_FailureDoesNotCancelSiblings(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.RegisterTaskHandler("step", testutil.HandlerFunc(
		func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
			return &config.TaskResult{TaskID: task.ID, Success: task.ID != "t1", Error: "failed"}, nil
		}))

	plan := singlePhasePlan(testutil.ParallelGroup("step", "t1", "t2", "t3", "t4"))
	plan.Settings.FailFast = true

	orch, _ := newTestOrchestrator(plan, reg, Options{Parallel: true})
	results, err := orch.RunAll(context.Background())

	// Fail-fast propagates after the group finishes, never mid-group.
	require.Error(t, err)
	require.Len(t, results, 4)
	assert.False(t, results["t1"].Success)
	assert.True(t, results["t4"].Success)
}

func TestParallelGroup_HonorsConcurrencyBound(t *testing.T) {
	t.Parallel()
	var inFlight, peak atomic.Int32
	reg := registry.New()
	reg.RegisterTaskHandler("slow", testutil.HandlerFunc(
		func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return &config.TaskResult{TaskID: task.ID, Success: true}, nil
		}))

	group := testutil.ParallelGroup("slow", "t1", "t2", "t3", "t4", "t5", "t6")
	group.MaxParallel = 2
	plan := singlePhasePlan(group)

	orch, _ := newTestOrchestrator(plan, reg, Options{Parallel: true})
	results, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestParallelGroup_DegradesToSequentialWhenDisabled(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var order []string
	reg := registry.New()
	reg.RegisterTaskHandler("step", testutil.HandlerFunc(
		func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
			mu.Lock()
			order = append(order, task.ID)
			mu.Unlock()
			return &config.TaskResult{TaskID: task.ID, Success: true}, nil
		}))

	plan := singlePhasePlan(testutil.ParallelGroup("step", "t1", "t2", "t3"))

	orch, _ := newTestOrchestrator(plan, reg, Options{Parallel: false})
	_, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, order)
}
