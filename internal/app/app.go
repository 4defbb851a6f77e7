package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	plan     *config.Plan
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. A
// failure to load or validate the plan is a fatal startup error and panics;
// the entrypoint recovers to present a clean message.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	plan, err := loader.Load(ctx, appConfig.PlanPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plan: %w", err))
	}
	logger.Debug("Plan loaded and translated into unified model.")

	if appConfig.ProjectRoot != "" {
		plan.Settings.ProjectRoot = appConfig.ProjectRoot
	}
	if appConfig.FailFast {
		plan.Settings.FailFast = true
	}

	if err := plan.Validate(); err != nil {
		panic(fmt.Errorf("invalid plan: %w", err))
	}
	for _, warning := range plan.Lint() {
		logger.Warn("Plan lint.", "warning", warning)
	}
	logger.Debug("Plan validation passed.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All capability modules registered.", "count", len(modules),
		"taskHandlers", reg.TaskHandlerCount(), "checkHandlers", reg.CheckHandlerCount())

	for _, typeTag := range reg.UnknownTaskTypes(plan) {
		logger.Warn("Plan declares a task type with no registered handler; those tasks will fail at dispatch.", "type", typeTag)
	}
	for _, kind := range reg.UnknownCheckKinds(plan) {
		logger.Warn("Plan declares a validation kind with no registered check; those checks will pass by default.", "kind", kind)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		plan:     plan,
	}
}

// Plan returns the loaded plan model. This is primarily for testing.
func (a *App) Plan() *config.Plan {
	return a.plan
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
