package engine

import (
	"context"
	"fmt"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
)

// runPhase executes a phase's groups in resolved dependency order. Groups
// whose prerequisites are not in the completed set are skipped with a
// warning. A group failure halts the phase only under fail-fast.
func (o *Orchestrator) runPhase(ctx context.Context, phaseID string, phase *config.Phase, groupFilter string) error {
	logger := ctxlog.FromContext(ctx).With("phase", phaseID)

	groups := phase.Groups
	if groupFilter != "" {
		group, ok := phase.Groups[groupFilter]
		if !ok {
			return fmt.Errorf("group %q not found in phase %q", groupFilter, phaseID)
		}
		groups = map[string]*config.Group{groupFilter: group}
	}

	deps := make(map[string][]string, len(groups))
	for id, group := range groups {
		deps[id] = group.DependsOn
	}
	order, forced := ResolveOrder(deps, o.state.completedSet())
	for _, id := range forced {
		logger.Warn("Group order forced; dependency cycle or unknown prerequisite.", "group", id)
	}

	for _, groupID := range order {
		group := groups[groupID]

		// Only direct prerequisite membership in the completed set is
		// checked; no transitive closure is computed for filtered runs.
		if !o.state.dependenciesMet(group.DependsOn) {
			logger.Warn("Skipping group due to unmet prerequisites.", "group", groupID, "dependsOn", group.DependsOn)
			continue
		}

		o.reporter.StartGroup(groupID, group)
		if err := o.runGroup(ctx, group); err != nil {
			o.reporter.CompleteGroup(groupID, false, err)
			if o.plan.Settings.FailFast {
				return &GroupError{Phase: phaseID, Group: groupID, Err: err}
			}
			continue
		}
		o.state.markGroupCompleted(groupID)
		o.reporter.CompleteGroup(groupID, true, nil)
	}

	return nil
}
