package testutil

import (
	"context"
	"sync"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/registry"
)

// HandlerFunc adapts an ordinary function into a registry.Handler.
type HandlerFunc func(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error)

// Execute implements registry.Handler.
func (f HandlerFunc) Execute(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error) {
	return f(ctx, task, root)
}

// CheckFunc adapts an ordinary function into a registry.Check.
type CheckFunc func(ctx context.Context, check *config.ValidationCheck, root string) (bool, error)

// Run implements registry.Check.
func (f CheckFunc) Run(ctx context.Context, check *config.ValidationCheck, root string) (bool, error) {
	return f(ctx, check, root)
}

// FlakyHandler faults a fixed number of times before succeeding, recording
// the attempt count per task. It drives retry-policy tests.
type FlakyHandler struct {
	// FaultsBeforeSuccess is how many consecutive attempts return an error.
	FaultsBeforeSuccess int
	// Err is returned for each faulting attempt.
	Err error

	mu       sync.Mutex
	attempts map[string]int
}

// Attempts returns how many times the given task was dispatched.
func (h *FlakyHandler) Attempts(taskID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attempts[taskID]
}

// Execute implements registry.Handler.
func (h *FlakyHandler) Execute(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
	h.mu.Lock()
	if h.attempts == nil {
		h.attempts = make(map[string]int)
	}
	h.attempts[task.ID]++
	n := h.attempts[task.ID]
	h.mu.Unlock()

	if n <= h.FaultsBeforeSuccess {
		return nil, h.Err
	}
	return &config.TaskResult{TaskID: task.ID, Success: true, Message: "recovered"}, nil
}

// OKHandler succeeds immediately for every task.
func OKHandler() registry.Handler {
	return HandlerFunc(func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
		return &config.TaskResult{TaskID: task.ID, Success: true}, nil
	})
}

// FailHandler reports a logical failure for every task without faulting.
func FailHandler(message string) registry.Handler {
	return HandlerFunc(func(_ context.Context, task *config.Task, _ string) (*config.TaskResult, error) {
		return &config.TaskResult{TaskID: task.ID, Success: false, Error: message}, nil
	})
}
