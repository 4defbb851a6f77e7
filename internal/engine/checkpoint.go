package engine

import (
	"context"
	"log/slog"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
)

// runCheckpoint runs every validation check in the checkpoint and returns
// true only if all passed. There is no short-circuit: all checks run even
// after a failure, so the full set of violations is visible at once.
func (o *Orchestrator) runCheckpoint(ctx context.Context, key string, checkpoint *config.Checkpoint) bool {
	logger := ctxlog.FromContext(ctx).With("checkpoint", key)
	o.reporter.StartCheckpoint(key, checkpoint)

	allPassed := true
	for _, check := range checkpoint.Validations {
		if !o.runValidation(ctx, logger, check) {
			allPassed = false
		}
	}

	o.reporter.CompleteCheckpoint(key, allPassed)
	return allPassed
}

// runValidation dispatches one check by kind. Unknown kinds pass with a
// warning so that a new kind never silently blocks a run before its check
// is implemented; this permissive default can mask a missing check, which
// is why the warning is always logged.
func (o *Orchestrator) runValidation(ctx context.Context, logger *slog.Logger, check *config.ValidationCheck) bool {
	handler, ok := o.registry.CheckHandler(check.Kind)
	if !ok {
		logger.Warn("Unknown validation kind; treating as passed.", "kind", check.Kind)
		return true
	}

	passed, err := handler.Run(ctx, check, o.plan.Settings.ProjectRoot)
	if err != nil {
		logger.Error("Validation check errored.", "kind", check.Kind, "error", err)
		return false
	}
	if !passed {
		logger.Warn("Validation check failed.", "kind", check.Kind)
	}
	return passed
}
