package engine

import (
	"sync"

	"github.com/vk/phaserun/internal/config"
)

// runState is the mutable state of one orchestration run: the latest result
// per task identifier and the set of groups that completed successfully.
// Task completions are the only concurrent writers (parallel groups), so all
// access funnels through the mutex as the single accumulation point.
type runState struct {
	mu              sync.Mutex
	results         map[string]*config.TaskResult
	completedGroups map[string]struct{}
}

func newRunState() *runState {
	return &runState{
		results:         make(map[string]*config.TaskResult),
		completedGroups: make(map[string]struct{}),
	}
}

func (s *runState) addResult(result *config.TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.TaskID] = result
}

func (s *runState) snapshot() map[string]*config.TaskResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*config.TaskResult, len(s.results))
	for id, res := range s.results {
		out[id] = res
	}
	return out
}

func (s *runState) markGroupCompleted(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completedGroups[groupID] = struct{}{}
}

// completedSet returns a copy of the completed-groups set for the resolver.
func (s *runState) completedSet() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.completedGroups))
	for id := range s.completedGroups {
		out[id] = struct{}{}
	}
	return out
}

func (s *runState) dependenciesMet(dependsOn []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dep := range dependsOn {
		if _, ok := s.completedGroups[dep]; !ok {
			return false
		}
	}
	return true
}
