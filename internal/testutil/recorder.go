package testutil

import (
	"fmt"
	"sync"

	"github.com/vk/phaserun/internal/config"
)

// Recorder is a report.Reporter that appends one formatted line per lifecycle
// event. It is safe for the concurrent task callbacks of parallel groups.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Events returns a copy of the recorded event lines in arrival order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Has reports whether any recorded event equals the given line.
func (r *Recorder) Has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *Recorder) StartOrchestration(plan *config.Plan) {
	r.add("orchestration:start")
}

func (r *Recorder) CompleteOrchestration(results map[string]*config.TaskResult) {
	r.add("orchestration:complete tasks=%d", len(results))
}

func (r *Recorder) StartPhase(phaseID string, phase *config.Phase) {
	r.add("phase:start %s", phaseID)
}

func (r *Recorder) CompletePhase(phaseID string, success bool, err error) {
	r.add("phase:complete %s success=%t", phaseID, success)
}

func (r *Recorder) StartGroup(groupID string, group *config.Group) {
	r.add("group:start %s", groupID)
}

func (r *Recorder) CompleteGroup(groupID string, success bool, err error) {
	r.add("group:complete %s success=%t", groupID, success)
}

func (r *Recorder) StartTask(task *config.Task) {
	r.add("task:start %s", task.ID)
}

func (r *Recorder) CompleteTask(task *config.Task, result *config.TaskResult) {
	r.add("task:complete %s success=%t", task.ID, result.Success)
}

func (r *Recorder) StartCheckpoint(key string, checkpoint *config.Checkpoint) {
	r.add("checkpoint:start %s", key)
}

func (r *Recorder) CompleteCheckpoint(key string, passed bool) {
	r.add("checkpoint:complete %s passed=%t", key, passed)
}
