package report

import "github.com/vk/phaserun/internal/config"

// Nop is a Reporter that discards every notification. Useful for tests and
// for embedding the engine as a library.
type Nop struct{}

func (Nop) StartOrchestration(*config.Plan)                         {}
func (Nop) CompleteOrchestration(map[string]*config.TaskResult)     {}
func (Nop) StartPhase(string, *config.Phase)                        {}
func (Nop) CompletePhase(string, bool, error)                       {}
func (Nop) StartGroup(string, *config.Group)                        {}
func (Nop) CompleteGroup(string, bool, error)                       {}
func (Nop) StartTask(*config.Task)                                  {}
func (Nop) CompleteTask(*config.Task, *config.TaskResult)           {}
func (Nop) StartCheckpoint(string, *config.Checkpoint)              {}
func (Nop) CompleteCheckpoint(string, bool)                         {}
