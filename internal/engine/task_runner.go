package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// maxRetryDelay caps the exponential backoff between handler attempts.
const maxRetryDelay = 10 * time.Second

// executeTask runs one task through its handler, applying the retry policy,
// and converts any fault into a structured result. It never lets a fault
// escape to the caller: every dispatched task yields exactly one TaskResult.
//
// Only handler faults (a returned error or a recovered panic) are retried.
// A logical failure, where the handler completes but reports Success=false,
// is returned as-is on the first attempt.
func (o *Orchestrator) executeTask(ctx context.Context, task *config.Task) *config.TaskResult {
	logger := ctxlog.FromContext(ctx).With("taskID", task.ID)

	if o.opts.DryRun {
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: true,
			Message: fmt.Sprintf("[dry run] would execute: %s (%s)", task.Name, task.Type),
		}
	}

	handler, ok := o.registry.TaskHandler(task.Type)
	if !ok {
		err := &UnknownTaskTypeError{Type: task.Type}
		logger.Error("Task dispatch failed.", "error", err)
		return &config.TaskResult{TaskID: task.ID, Success: false, Error: err.Error()}
	}

	attempts := o.plan.Settings.RetryAttempts
	if attempts <= 0 {
		attempts = config.DefaultRetryAttempts
	}
	delay := o.plan.Settings.RetryDelay()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := o.callHandler(ctx, handler, task)
		if err == nil {
			return result
		}
		lastErr = err
		logger.Warn("Handler fault.", "attempt", attempt, "attempts", attempts, "error", err)

		if attempt < attempts {
			o.sleep(delay)
			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}
	}

	logger.Error("Task failed after retries.", "attempts", attempts, "error", lastErr)
	return &config.TaskResult{
		TaskID:  task.ID,
		Success: false,
		Message: fmt.Sprintf("handler failed after %d attempts", attempts),
		Error:   lastErr.Error(),
	}
}

// callHandler performs exactly one handler invocation, converting a panic
// into an ordinary fault error.
func (o *Orchestrator) callHandler(ctx context.Context, handler registry.Handler, task *config.Task) (result *config.TaskResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	result, err = handler.Execute(ctx, task, o.plan.Settings.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &config.TaskResult{TaskID: task.ID, Success: true}
	}
	if result.TaskID == "" {
		result.TaskID = task.ID
	}
	return result, nil
}
