package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vk/phaserun/internal/config"
)

// runGroup executes a group's tasks and returns an error when any task
// failed. The caller decides whether that error propagates (fail-fast) or
// merely keeps the group out of the completed set.
//
// Sequential groups imply ordering intent, so under fail-fast they
// short-circuit on the first failure; parallel groups imply independence, so
// every task is started and failures are judged only after the whole group
// finishes.
func (o *Orchestrator) runGroup(ctx context.Context, group *config.Group) error {
	if group.Execution == config.ExecutionParallel && o.opts.Parallel {
		return o.runTasksParallel(ctx, group)
	}
	return o.runTasksSequential(ctx, group)
}

// runTasksSequential runs tasks strictly in declared order. Under fail-fast
// the remaining tasks are not started after a failure.
func (o *Orchestrator) runTasksSequential(ctx context.Context, group *config.Group) error {
	failures := 0
	for _, task := range group.Tasks {
		o.reporter.StartTask(task)
		result := o.executeTask(ctx, task)
		o.state.addResult(result)
		o.reporter.CompleteTask(task, result)

		if !result.Success {
			failures++
			if o.plan.Settings.FailFast {
				return fmt.Errorf("task %q failed: %s", task.ID, result.Error)
			}
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d tasks failed", failures, len(group.Tasks))
	}
	return nil
}

// runTasksParallel starts every task regardless of individual failures,
// bounding in-flight handler calls with the group's concurrency limit.
// Started siblings are never canceled mid-flight.
func (o *Orchestrator) runTasksParallel(ctx context.Context, group *config.Group) error {
	var failures atomic.Int32

	pool := new(errgroup.Group)
	pool.SetLimit(group.EffectiveMaxParallel(&o.plan.Settings))

	for _, task := range group.Tasks {
		task := task
		pool.Go(func() error {
			o.reporter.StartTask(task)
			result := o.executeTask(ctx, task)
			o.state.addResult(result)
			o.reporter.CompleteTask(task, result)
			if !result.Success {
				failures.Add(1)
			}
			// Always nil: a failed task must not cancel its siblings.
			return nil
		})
	}
	_ = pool.Wait()

	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d of %d tasks failed", n, len(group.Tasks))
	}
	return nil
}
