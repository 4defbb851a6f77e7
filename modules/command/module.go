// Package command provides the task handler for the "command" task type:
// it runs a configured shell command in the project root and reports a
// logical failure on a nonzero exit status.
package command

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// Module registers the command task handler.
type Module struct{}

// Register registers the handler with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTaskHandler("command", &handler{})
}

type handler struct{}

// Execute runs the task's configured command. A missing command parameter is
// a logical failure, not a fault: retrying cannot fix the plan.
func (h *handler) Execute(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error) {
	logger := ctxlog.FromContext(ctx).With("taskID", task.ID)

	cmdline, ok := task.StringParam("command")
	if !ok || strings.TrimSpace(cmdline) == "" {
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: false,
			Error:   "task is missing the required \"command\" parameter",
		}, nil
	}

	logger.Debug("Running command.", "command", cmdline, "dir", root)
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	cmd.Dir = root

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, exited := err.(*exec.ExitError); !exited {
			// The command never ran (missing shell, bad dir): a fault,
			// eligible for retry.
			return nil, fmt.Errorf("failed to start command: %w", err)
		}
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: false,
			Message: fmt.Sprintf("command exited with an error: %s", cmdline),
			Output:  string(output),
			Error:   err.Error(),
		}, nil
	}

	return &config.TaskResult{
		TaskID:  task.ID,
		Success: true,
		Message: fmt.Sprintf("command succeeded: %s", cmdline),
		Output:  string(output),
	}, nil
}
