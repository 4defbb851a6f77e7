// Package yamlcfg is the YAML implementation of the config.Loader
// interface. It accepts the legacy plan layout: an `orchestrator` section
// for settings, top-level `phase_*` keys for phases, and a `checkpoints`
// section keyed by "after_<phase>".
package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/fsutil"
)

// phasePrefix marks top-level document keys that declare a phase.
const phasePrefix = "phase_"

// Loader loads .yaml/.yml plan files.
type Loader struct{}

// NewLoader creates a new YAML plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

type yamlOrchestrator struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	ProjectRoot string `yaml:"project_root"`
	Settings    struct {
		MaxParallelTasks  int  `yaml:"max_parallel_tasks"`
		RetryAttempts     int  `yaml:"retry_attempts"`
		RetryDelaySeconds int  `yaml:"retry_delay_seconds"`
		FailFast          bool `yaml:"fail_fast"`
	} `yaml:"settings"`
}

type yamlPhase struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	DependsOn   []string             `yaml:"depends_on"`
	Groups      map[string]yamlGroup `yaml:"groups"`
}

type yamlGroup struct {
	Name        string     `yaml:"name"`
	Execution   string     `yaml:"execution"`
	MaxParallel int        `yaml:"max_parallel"`
	DependsOn   []string   `yaml:"depends_on"`
	Tasks       []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Target      string         `yaml:"target"`
	Description string         `yaml:"description"`
	Priority    string         `yaml:"priority"`
	Params      map[string]any `yaml:"params"`
}

type yamlCheckpoint struct {
	Name        string           `yaml:"name"`
	Validations []yamlValidation `yaml:"validations"`
}

type yamlValidation struct {
	Type        string         `yaml:"type"`
	Target      *int           `yaml:"target"`
	Description string         `yaml:"description"`
	Params      map[string]any `yaml:"params"`
}

// Load parses all YAML files under path and merges them into one plan model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(path, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML plan files found at %s", path)
	}
	logger.Debug("Discovered YAML plan files.", "count", len(files))

	plan := &config.Plan{
		Phases:      make(map[string]*config.Phase),
		Checkpoints: make(map[string]*config.Checkpoint),
	}
	settingsSeen := false

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read plan file %s: %w", file, err)
		}

		var root map[string]yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, err)
		}

		for key, node := range root {
			switch {
			case key == "orchestrator":
				if settingsSeen {
					return nil, fmt.Errorf("duplicate orchestrator section in %s", file)
				}
				settingsSeen = true
				var orch yamlOrchestrator
				if err := node.Decode(&orch); err != nil {
					return nil, fmt.Errorf("%s: invalid orchestrator section: %w", file, err)
				}
				plan.Settings = translateSettings(&orch)

			case strings.HasPrefix(key, phasePrefix):
				if _, dup := plan.Phases[key]; dup {
					return nil, fmt.Errorf("duplicate phase %q in %s", key, file)
				}
				var phase yamlPhase
				if err := node.Decode(&phase); err != nil {
					return nil, fmt.Errorf("%s: invalid phase %q: %w", file, key, err)
				}
				translated, err := translatePhase(key, &phase)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				plan.Phases[key] = translated

			case key == "checkpoints":
				var checkpoints map[string]yamlCheckpoint
				if err := node.Decode(&checkpoints); err != nil {
					return nil, fmt.Errorf("%s: invalid checkpoints section: %w", file, err)
				}
				for cpKey, cp := range checkpoints {
					if _, dup := plan.Checkpoints[cpKey]; dup {
						return nil, fmt.Errorf("duplicate checkpoint %q in %s", cpKey, file)
					}
					translated, err := translateCheckpoint(cpKey, cp)
					if err != nil {
						return nil, fmt.Errorf("%s: %w", file, err)
					}
					plan.Checkpoints[cpKey] = translated
				}

			default:
				logger.Warn("Ignoring unrecognized top-level plan key.", "file", file, "key", key)
			}
		}
	}

	plan.Settings.ApplyDefaults()
	logger.Debug("YAML plan loading complete.", "phases", len(plan.Phases), "checkpoints", len(plan.Checkpoints))
	return plan, nil
}

func translateSettings(orch *yamlOrchestrator) config.Settings {
	return config.Settings{
		Name:              orch.Name,
		Version:           orch.Version,
		ProjectRoot:       orch.ProjectRoot,
		MaxParallelTasks:  orch.Settings.MaxParallelTasks,
		RetryAttempts:     orch.Settings.RetryAttempts,
		RetryDelaySeconds: orch.Settings.RetryDelaySeconds,
		FailFast:          orch.Settings.FailFast,
	}
}

func translatePhase(id string, src *yamlPhase) (*config.Phase, error) {
	phase := &config.Phase{
		Name:        src.Name,
		Description: src.Description,
		DependsOn:   src.DependsOn,
		Groups:      make(map[string]*config.Group, len(src.Groups)),
	}
	if phase.Name == "" {
		phase.Name = id
	}

	for groupID, group := range src.Groups {
		translated, err := translateGroup(groupID, group)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", id, err)
		}
		phase.Groups[groupID] = translated
	}
	return phase, nil
}

func translateGroup(id string, src yamlGroup) (*config.Group, error) {
	group := &config.Group{
		Name:        src.Name,
		Execution:   src.Execution,
		MaxParallel: src.MaxParallel,
		DependsOn:   src.DependsOn,
		Tasks:       make([]*config.Task, 0, len(src.Tasks)),
	}
	if group.Name == "" {
		group.Name = id
	}
	if group.Execution == "" {
		group.Execution = config.ExecutionSequential
	}

	for _, task := range src.Tasks {
		translated, err := translateTask(task)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", id, err)
		}
		group.Tasks = append(group.Tasks, translated)
	}
	return group, nil
}

func translateTask(src yamlTask) (*config.Task, error) {
	params, err := config.ParamsFromGo(src.Params)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", src.ID, err)
	}

	task := &config.Task{
		ID:          src.ID,
		Name:        src.Name,
		Type:        src.Type,
		Target:      src.Target,
		Description: src.Description,
		Priority:    src.Priority,
		Params:      params,
	}
	if task.Name == "" {
		task.Name = task.ID
	}
	if task.Priority == "" {
		task.Priority = config.PriorityMedium
	}
	return task, nil
}

func translateCheckpoint(key string, src yamlCheckpoint) (*config.Checkpoint, error) {
	checkpoint := &config.Checkpoint{
		Name:        src.Name,
		Validations: make([]*config.ValidationCheck, 0, len(src.Validations)),
	}
	if checkpoint.Name == "" {
		checkpoint.Name = key
	}

	for _, validation := range src.Validations {
		params, err := config.ParamsFromGo(validation.Params)
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: %w", key, err)
		}
		checkpoint.Validations = append(checkpoint.Validations, &config.ValidationCheck{
			Kind:        validation.Type,
			Target:      validation.Target,
			Description: validation.Description,
			Params:      params,
		})
	}
	return checkpoint, nil
}
