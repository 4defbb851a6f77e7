package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
	"github.com/vk/phaserun/internal/report"
)

// Options control execution behavior for one Orchestrator instance.
type Options struct {
	// DryRun bypasses handlers entirely and records synthetic success
	// results describing what would have run.
	DryRun bool
	// Parallel enables concurrent execution within parallel groups. When
	// false, parallel groups degrade to sequential execution.
	Parallel bool
}

// Orchestrator drives all phases of a plan in resolved dependency order. It
// owns the run state for one invocation: the map of task results and the set
// of groups that completed successfully. Run state is never persisted;
// a fresh Orchestrator starts empty.
type Orchestrator struct {
	plan     *config.Plan
	registry *registry.Registry
	reporter report.Reporter
	opts     Options

	// sleep is the backoff hook between retry attempts; tests replace it.
	sleep func(time.Duration)

	state *runState
}

// New creates an Orchestrator for the given plan. A nil reporter disables
// lifecycle notifications.
func New(plan *config.Plan, reg *registry.Registry, reporter report.Reporter, opts Options) *Orchestrator {
	if reporter == nil {
		reporter = report.Nop{}
	}
	return &Orchestrator{
		plan:     plan,
		registry: reg,
		reporter: reporter,
		opts:     opts,
		sleep:    time.Sleep,
		state:    newRunState(),
	}
}

// RunAll executes every phase in resolved dependency order, running each
// phase's checkpoint (if declared) after it completes successfully. The
// returned map always describes every task that was reached, even when the
// run aborted under fail-fast; the error is non-nil only for such an abort.
func (o *Orchestrator) RunAll(ctx context.Context) (map[string]*config.TaskResult, error) {
	logger := ctxlog.FromContext(ctx)
	o.reporter.StartOrchestration(o.plan)

	deps := make(map[string][]string, len(o.plan.Phases))
	for id, phase := range o.plan.Phases {
		deps[id] = phase.DependsOn
	}
	order, forced := ResolveOrder(deps, nil)
	for _, id := range forced {
		logger.Warn("Phase order forced; dependency cycle or unknown prerequisite.", "phase", id)
	}

	var runErr error
	for _, phaseID := range order {
		phase := o.plan.Phases[phaseID]
		o.reporter.StartPhase(phaseID, phase)

		if err := o.runPhase(ctx, phaseID, phase, ""); err != nil {
			o.reporter.CompletePhase(phaseID, false, err)
			if o.plan.Settings.FailFast {
				runErr = &PhaseError{Phase: phaseID, Err: err}
				break
			}
			continue
		}
		o.reporter.CompletePhase(phaseID, true, nil)

		key := config.CheckpointKey(phaseID)
		checkpoint, ok := o.plan.Checkpoints[key]
		if !ok {
			continue
		}
		if passed := o.runCheckpoint(ctx, key, checkpoint); !passed && o.plan.Settings.FailFast {
			runErr = &PhaseError{Phase: phaseID, Err: fmt.Errorf("checkpoint %q failed", key)}
			break
		}
	}

	results := o.Results()
	o.reporter.CompleteOrchestration(results)
	return results, runErr
}

// RunOne executes a single phase, optionally restricted to one group. No
// checkpoint runs in this mode. A group whose declared prerequisite was
// filtered out (or never ran) is skipped with a warning, not executed.
func (o *Orchestrator) RunOne(ctx context.Context, phaseID, groupID string) (map[string]*config.TaskResult, error) {
	phase, ok := o.plan.Phases[phaseID]
	if !ok {
		return o.Results(), fmt.Errorf("phase %q not found", phaseID)
	}

	o.reporter.StartPhase(phaseID, phase)
	if err := o.runPhase(ctx, phaseID, phase, groupID); err != nil {
		o.reporter.CompletePhase(phaseID, false, err)
		return o.Results(), &PhaseError{Phase: phaseID, Err: err}
	}
	o.reporter.CompletePhase(phaseID, true, nil)
	return o.Results(), nil
}

// Results returns a snapshot of every task result recorded so far.
func (o *Orchestrator) Results() map[string]*config.TaskResult {
	return o.state.snapshot()
}
