// Package manual provides the task handler for the "manual" task type.
// Manual tasks cannot be automated; the handler records the operator
// instructions and succeeds so the rest of the plan can proceed.
package manual

import (
	"context"
	"fmt"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// Module registers the manual task handler.
type Module struct{}

// Register registers the handler with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTaskHandler("manual", &handler{})
}

type handler struct{}

func (h *handler) Execute(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error) {
	logger := ctxlog.FromContext(ctx).With("taskID", task.ID)

	instructions, _ := task.StringParam("instructions")
	if instructions == "" {
		instructions = task.Description
	}
	logger.Info("Manual action required.", "task", task.Name, "instructions", instructions)

	message := fmt.Sprintf("requires manual action: %s", task.Name)
	if instructions != "" {
		message = fmt.Sprintf("%s: %s", message, instructions)
	}
	return &config.TaskResult{
		TaskID:  task.ID,
		Success: true,
		Message: message,
	}, nil
}
