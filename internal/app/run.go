package app

import (
	"context"
	"fmt"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/engine"
	"github.com/vk/phaserun/internal/report"
)

// Run executes the selected orchestration mode. The returned error is
// non-nil when the run aborted under fail-fast or when the final result map
// contains any failed task; either way every reached task is reported.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.DryRun {
		a.logger.Info("Dry run mode: handlers will not be invoked.")
	}

	orch := engine.New(a.plan, a.registry, report.NewConsole(a.outW), engine.Options{
		DryRun:   appConfig.DryRun,
		Parallel: appConfig.Parallel,
	})

	var (
		results map[string]*config.TaskResult
		runErr  error
	)
	if appConfig.RunAll {
		results, runErr = orch.RunAll(ctx)
	} else {
		results, runErr = orch.RunOne(ctx, appConfig.Phase, appConfig.Group)
	}
	if runErr != nil {
		return fmt.Errorf("execution aborted: %w", runErr)
	}

	failed := 0
	for _, res := range results {
		if !res.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("run completed with %d of %d tasks failed", failed, len(results))
	}

	a.logger.Debug("App.Run method finished.", "tasks", len(results))
	return nil
}
