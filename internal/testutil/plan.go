package testutil

import (
	"github.com/vk/phaserun/internal/config"
)

// NewPlan builds a plan with defaults applied, ready for the engine. Phases
// and checkpoints start empty; add to the returned maps directly.
func NewPlan() *config.Plan {
	plan := &config.Plan{
		Settings: config.Settings{
			Name:        "test-plan",
			ProjectRoot: ".",
		},
		Phases:      make(map[string]*config.Phase),
		Checkpoints: make(map[string]*config.Checkpoint),
	}
	plan.Settings.ApplyDefaults()
	return plan
}

// SequentialGroup builds a sequential group of stub tasks, all of the given
// type, with the given ids.
func SequentialGroup(taskType string, taskIDs ...string) *config.Group {
	return group(config.ExecutionSequential, taskType, taskIDs)
}

// ParallelGroup builds a parallel group of stub tasks, all of the given type,
// with the given ids.
func ParallelGroup(taskType string, taskIDs ...string) *config.Group {
	return group(config.ExecutionParallel, taskType, taskIDs)
}

func group(execution, taskType string, taskIDs []string) *config.Group {
	g := &config.Group{Execution: execution}
	for _, id := range taskIDs {
		g.Tasks = append(g.Tasks, &config.Task{
			ID:       id,
			Name:     id,
			Type:     taskType,
			Priority: config.PriorityMedium,
		})
	}
	return g
}
