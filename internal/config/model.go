package config

import (
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Execution modes for a group's tasks.
const (
	ExecutionSequential = "sequential"
	ExecutionParallel   = "parallel"
)

// Task priorities, in descending order of urgency.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Plan is the unified, format-agnostic representation of an entire
// orchestration plan: global settings, phases keyed by identifier, and
// checkpoints keyed by their derived "after_<phase>" key.
type Plan struct {
	Settings    Settings
	Phases      map[string]*Phase
	Checkpoints map[string]*Checkpoint
}

// Settings holds the global orchestration settings.
type Settings struct {
	Name              string
	Version           string
	ProjectRoot       string
	MaxParallelTasks  int
	RetryAttempts     int
	RetryDelaySeconds int
	FailFast          bool
}

// Phase is a named container of groups, orderable against other phases.
type Phase struct {
	Name        string
	Description string
	DependsOn   []string
	Groups      map[string]*Group
}

// Group is an ordered collection of tasks within a phase. Its DependsOn
// entries refer to sibling groups in the same phase.
type Group struct {
	Name        string
	Execution   string
	MaxParallel int
	DependsOn   []string
	Tasks       []*Task
}

// Task is the smallest unit of work, dispatched to a type-specific handler.
// Params are opaque to the engine and passed through to the handler.
type Task struct {
	ID          string
	Name        string
	Type        string
	Target      string
	Description string
	Priority    string
	Params      map[string]cty.Value
}

// Checkpoint is a post-phase gate consisting of validation checks.
type Checkpoint struct {
	Name        string
	Validations []*ValidationCheck
}

// ValidationCheck is a single stateless, re-runnable check within a
// checkpoint, addressed by its kind tag.
type ValidationCheck struct {
	Kind        string
	Target      *int
	Description string
	Params      map[string]cty.Value
}

// TaskResult is the outcome record of a task's whole attempt sequence.
// It is produced exactly once per dispatched task and never mutated after.
type TaskResult struct {
	TaskID  string
	Success bool
	Message string
	Output  string
	Error   string
}

// Default settings applied when the plan leaves them unset.
const (
	DefaultMaxParallelTasks  = 4
	DefaultRetryAttempts     = 3
	DefaultRetryDelaySeconds = 2
)

// ApplyDefaults fills in zero-valued settings with their documented defaults.
func (s *Settings) ApplyDefaults() {
	if s.ProjectRoot == "" {
		s.ProjectRoot = "."
	}
	if s.MaxParallelTasks <= 0 {
		s.MaxParallelTasks = DefaultMaxParallelTasks
	}
	if s.RetryAttempts <= 0 {
		s.RetryAttempts = DefaultRetryAttempts
	}
	if s.RetryDelaySeconds <= 0 {
		s.RetryDelaySeconds = DefaultRetryDelaySeconds
	}
}

// RetryDelay returns the backoff base as a duration.
func (s *Settings) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelaySeconds) * time.Second
}

// EffectiveMaxParallel returns the concurrency bound for this group, falling
// back to the global ceiling when the group does not declare its own.
func (g *Group) EffectiveMaxParallel(settings *Settings) int {
	if g.MaxParallel > 0 {
		return g.MaxParallel
	}
	if settings != nil && settings.MaxParallelTasks > 0 {
		return settings.MaxParallelTasks
	}
	return DefaultMaxParallelTasks
}

// CheckpointKey derives the checkpoint key that gates the given phase.
func CheckpointKey(phaseID string) string {
	return "after_" + phaseID
}
