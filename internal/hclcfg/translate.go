package hclcfg

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/phaserun/internal/config"
)

func translateSettings(block *settingsBlock) config.Settings {
	return config.Settings{
		Name:              block.Name,
		Version:           block.Version,
		ProjectRoot:       block.ProjectRoot,
		MaxParallelTasks:  block.MaxParallelTasks,
		RetryAttempts:     block.RetryAttempts,
		RetryDelaySeconds: block.RetryDelaySeconds,
		FailFast:          block.FailFast,
	}
}

func translatePhase(block *phaseBlock) (*config.Phase, error) {
	phase := &config.Phase{
		Name:        block.Name,
		Description: block.Description,
		DependsOn:   block.DependsOn,
		Groups:      make(map[string]*config.Group, len(block.Groups)),
	}
	if phase.Name == "" {
		phase.Name = block.ID
	}

	for _, group := range block.Groups {
		if _, dup := phase.Groups[group.ID]; dup {
			return nil, fmt.Errorf("phase %q: duplicate group %q", block.ID, group.ID)
		}
		translated, err := translateGroup(group)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", block.ID, err)
		}
		phase.Groups[group.ID] = translated
	}
	return phase, nil
}

func translateGroup(block *groupBlock) (*config.Group, error) {
	group := &config.Group{
		Name:        block.Name,
		Execution:   block.Execution,
		MaxParallel: block.MaxParallel,
		DependsOn:   block.DependsOn,
		Tasks:       make([]*config.Task, 0, len(block.Tasks)),
	}
	if group.Name == "" {
		group.Name = block.ID
	}
	if group.Execution == "" {
		group.Execution = config.ExecutionSequential
	}

	for _, task := range block.Tasks {
		translated, err := translateTask(task)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", block.ID, err)
		}
		group.Tasks = append(group.Tasks, translated)
	}
	return group, nil
}

func translateTask(block *taskBlock) (*config.Task, error) {
	params, err := translateParams(block.Params)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", block.ID, err)
	}

	task := &config.Task{
		ID:          block.ID,
		Name:        block.Name,
		Type:        block.Type,
		Target:      block.Target,
		Description: block.Description,
		Priority:    block.Priority,
		Params:      params,
	}
	if task.Name == "" {
		task.Name = block.ID
	}
	if task.Priority == "" {
		task.Priority = config.PriorityMedium
	}
	return task, nil
}

func translateCheckpoint(block *checkpointBlock) (*config.Checkpoint, error) {
	checkpoint := &config.Checkpoint{
		Name:        block.Name,
		Validations: make([]*config.ValidationCheck, 0, len(block.Validations)),
	}
	if checkpoint.Name == "" {
		checkpoint.Name = block.Key
	}

	for _, validation := range block.Validations {
		params, err := translateParams(validation.Params)
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: %w", block.Key, err)
		}
		checkpoint.Validations = append(checkpoint.Validations, &config.ValidationCheck{
			Kind:        validation.Kind,
			Target:      validation.Target,
			Description: validation.Description,
			Params:      params,
		})
	}
	return checkpoint, nil
}

// translateParams evaluates a params block's attributes into cty values.
// Only literal expressions are supported; plan files have no variable scope.
func translateParams(body *paramsBody) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}

	attrs, diags := body.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid params block: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	params := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("param %q: %w", name, diags)
		}
		params[name] = val
	}
	return params, nil
}
