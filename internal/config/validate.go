package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate enforces the structural invariants of a plan: task identifiers are
// unique across the whole plan, group prerequisites reference sibling groups
// in the same phase, and execution modes are known. It returns all violations
// joined into a single error.
func (p *Plan) Validate() error {
	var errs []error

	seenTasks := make(map[string]string)
	for _, phaseID := range sortedKeys(p.Phases) {
		phase := p.Phases[phaseID]
		for _, groupID := range sortedKeys(phase.Groups) {
			group := phase.Groups[groupID]

			switch group.Execution {
			case "", ExecutionSequential, ExecutionParallel:
			default:
				errs = append(errs, fmt.Errorf("phase %q group %q: unknown execution mode %q", phaseID, groupID, group.Execution))
			}

			for _, dep := range group.DependsOn {
				if _, ok := phase.Groups[dep]; !ok {
					errs = append(errs, fmt.Errorf("phase %q group %q: prerequisite %q is not a group in the same phase", phaseID, groupID, dep))
				}
			}

			for _, task := range group.Tasks {
				if task.ID == "" {
					errs = append(errs, fmt.Errorf("phase %q group %q: task with empty identifier", phaseID, groupID))
					continue
				}
				if prev, dup := seenTasks[task.ID]; dup {
					errs = append(errs, fmt.Errorf("duplicate task identifier %q (first seen in %s)", task.ID, prev))
					continue
				}
				seenTasks[task.ID] = fmt.Sprintf("phase %q group %q", phaseID, groupID)
			}
		}
	}

	return errors.Join(errs...)
}

// Lint reports non-fatal plan smells: phase prerequisites that name unknown
// phases, checkpoints whose key matches no phase, and unrecognized task
// priorities. These surface as warnings, not errors.
func (p *Plan) Lint() []string {
	var warnings []string

	for _, phaseID := range sortedKeys(p.Phases) {
		phase := p.Phases[phaseID]
		for _, dep := range phase.DependsOn {
			if _, ok := p.Phases[dep]; !ok {
				warnings = append(warnings, fmt.Sprintf("phase %q depends on unknown phase %q", phaseID, dep))
			}
		}
		for _, groupID := range sortedKeys(phase.Groups) {
			for _, task := range phase.Groups[groupID].Tasks {
				switch task.Priority {
				case "", PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
				default:
					warnings = append(warnings, fmt.Sprintf("task %q: unrecognized priority %q", task.ID, task.Priority))
				}
			}
		}
	}

	for _, key := range sortedKeys(p.Checkpoints) {
		matched := false
		for phaseID := range p.Phases {
			if key == CheckpointKey(phaseID) {
				matched = true
				break
			}
		}
		if !matched {
			warnings = append(warnings, fmt.Sprintf("checkpoint %q matches no phase and will never run", key))
		}
	}

	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
