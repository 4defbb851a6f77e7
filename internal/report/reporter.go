package report

import "github.com/vk/phaserun/internal/config"

// Reporter receives lifecycle notifications from the engine. Task callbacks
// may arrive from concurrent goroutines within a parallel group;
// implementations must be safe for concurrent use.
type Reporter interface {
	StartOrchestration(plan *config.Plan)
	CompleteOrchestration(results map[string]*config.TaskResult)

	StartPhase(phaseID string, phase *config.Phase)
	CompletePhase(phaseID string, success bool, err error)

	StartGroup(groupID string, group *config.Group)
	CompleteGroup(groupID string, success bool, err error)

	StartTask(task *config.Task)
	CompleteTask(task *config.Task, result *config.TaskResult)

	StartCheckpoint(key string, checkpoint *config.Checkpoint)
	CompleteCheckpoint(key string, passed bool)
}
