// Package filegen provides the task handler for the "file_generation" task
// type: it renders a text/template from the task's parameters and writes the
// result to the task's target path under the project root.
package filegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// Module registers the file generation task handler.
type Module struct{}

// Register registers the handler with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTaskHandler("file_generation", &handler{})
}

type handler struct{}

// Execute renders the task's template. The template source comes from the
// "template" parameter (inline) or the "template_file" parameter (a path
// relative to the project root). All task parameters are available as
// template data, alongside the task's ID, Name and Target.
func (h *handler) Execute(ctx context.Context, task *config.Task, root string) (*config.TaskResult, error) {
	logger := ctxlog.FromContext(ctx).With("taskID", task.ID)

	if task.Target == "" {
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: false,
			Error:   "task has no target path to generate",
		}, nil
	}

	source, err := templateSource(task, root)
	if err != nil {
		return &config.TaskResult{TaskID: task.ID, Success: false, Error: err.Error()}, nil
	}

	tmpl, err := template.New(task.ID).Parse(source)
	if err != nil {
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: false,
			Error:   fmt.Sprintf("invalid template: %v", err),
		}, nil
	}

	data := map[string]any{
		"Task":   map[string]string{"ID": task.ID, "Name": task.Name, "Target": task.Target},
		"Params": config.ParamsToGo(task.Params),
	}
	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return &config.TaskResult{
			TaskID:  task.ID,
			Success: false,
			Error:   fmt.Sprintf("template execution failed: %v", err),
		}, nil
	}

	target := filepath.Join(root, task.Target)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}
	if err := os.WriteFile(target, rendered.Bytes(), 0o644); err != nil {
		// Write failures are environmental and may be transient.
		return nil, fmt.Errorf("failed to write %s: %w", target, err)
	}

	logger.Debug("Generated file.", "target", target, "bytes", rendered.Len())
	return &config.TaskResult{
		TaskID:  task.ID,
		Success: true,
		Message: fmt.Sprintf("generated %s (%d bytes)", task.Target, rendered.Len()),
	}, nil
}

func templateSource(task *config.Task, root string) (string, error) {
	if inline, ok := task.StringParam("template"); ok {
		return inline, nil
	}
	if file, ok := task.StringParam("template_file"); ok {
		data, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			return "", fmt.Errorf("failed to read template file %s: %v", file, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("task needs a \"template\" or \"template_file\" parameter")
}
