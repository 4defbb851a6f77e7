package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/phaserun/internal/config"
)

// Handler is the capability behind a task type. A returned error is a
// handler fault and is subject to the engine's retry policy; a result with
// Success=false is a logical failure and is returned as-is.
type Handler interface {
	Execute(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error)
}

// Check is the capability behind a validation check kind. A returned error
// counts as a failed check after being logged.
type Check interface {
	Run(ctx context.Context, check *config.ValidationCheck, root string) (bool, error)
}

// Module is the interface that all capability modules implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered task handlers and validation checks for a
// single application instance.
type Registry struct {
	taskHandlers  map[string]Handler
	checkHandlers map[string]Check
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		taskHandlers:  make(map[string]Handler),
		checkHandlers: make(map[string]Check),
	}
}

// RegisterTaskHandler registers the handler for a task type tag.
func (r *Registry) RegisterTaskHandler(typeTag string, h Handler) {
	if _, exists := r.taskHandlers[typeTag]; exists {
		panic(fmt.Sprintf("task handler for type %q already registered", typeTag))
	}
	slog.Debug("Registering task handler.", "type", typeTag)
	r.taskHandlers[typeTag] = h
}

// RegisterCheckHandler registers the check for a validation kind tag.
func (r *Registry) RegisterCheckHandler(kind string, c Check) {
	if _, exists := r.checkHandlers[kind]; exists {
		panic(fmt.Sprintf("check handler for kind %q already registered", kind))
	}
	slog.Debug("Registering check handler.", "kind", kind)
	r.checkHandlers[kind] = c
}

// TaskHandler looks up the handler for a task type tag.
func (r *Registry) TaskHandler(typeTag string) (Handler, bool) {
	h, ok := r.taskHandlers[typeTag]
	return h, ok
}

// CheckHandler looks up the check for a validation kind tag.
func (r *Registry) CheckHandler(kind string) (Check, bool) {
	c, ok := r.checkHandlers[kind]
	return c, ok
}

// TaskHandlerCount returns the number of registered task handlers.
func (r *Registry) TaskHandlerCount() int { return len(r.taskHandlers) }

// CheckHandlerCount returns the number of registered check handlers.
func (r *Registry) CheckHandlerCount() int { return len(r.checkHandlers) }
