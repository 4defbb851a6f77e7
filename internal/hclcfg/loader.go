// Package hclcfg is the HCL implementation of the config.Loader interface.
// Plan files declare settings, phase/group/task blocks, and checkpoint
// blocks; task and validation parameters are free-form attribute blocks
// carried as cty values.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/fsutil"
)

// Loader loads .hcl plan files.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all possible top-level blocks from any plan file.
type fileRoot struct {
	Settings    *settingsBlock     `hcl:"settings,block"`
	Phases      []*phaseBlock      `hcl:"phase,block"`
	Checkpoints []*checkpointBlock `hcl:"checkpoint,block"`
}

type settingsBlock struct {
	Name              string `hcl:"name,optional"`
	Version           string `hcl:"version,optional"`
	ProjectRoot       string `hcl:"project_root,optional"`
	MaxParallelTasks  int    `hcl:"max_parallel_tasks,optional"`
	RetryAttempts     int    `hcl:"retry_attempts,optional"`
	RetryDelaySeconds int    `hcl:"retry_delay_seconds,optional"`
	FailFast          bool   `hcl:"fail_fast,optional"`
}

type phaseBlock struct {
	ID          string        `hcl:"id,label"`
	Name        string        `hcl:"name,optional"`
	Description string        `hcl:"description,optional"`
	DependsOn   []string      `hcl:"depends_on,optional"`
	Groups      []*groupBlock `hcl:"group,block"`
}

type groupBlock struct {
	ID          string       `hcl:"id,label"`
	Name        string       `hcl:"name,optional"`
	Execution   string       `hcl:"execution,optional"`
	MaxParallel int          `hcl:"max_parallel,optional"`
	DependsOn   []string     `hcl:"depends_on,optional"`
	Tasks       []*taskBlock `hcl:"task,block"`
}

type taskBlock struct {
	ID          string      `hcl:"id,label"`
	Name        string      `hcl:"name,optional"`
	Type        string      `hcl:"type"`
	Target      string      `hcl:"target,optional"`
	Description string      `hcl:"description,optional"`
	Priority    string      `hcl:"priority,optional"`
	Params      *paramsBody `hcl:"params,block"`
}

type checkpointBlock struct {
	Key         string             `hcl:"key,label"`
	Name        string             `hcl:"name,optional"`
	Validations []*validationBlock `hcl:"validation,block"`
}

type validationBlock struct {
	Kind        string      `hcl:"kind"`
	Target      *int        `hcl:"target,optional"`
	Description string      `hcl:"description,optional"`
	Params      *paramsBody `hcl:"params,block"`
}

// paramsBody captures the raw body of a params block so its attributes can
// be evaluated into cty values without a fixed schema.
type paramsBody struct {
	Remain hcl.Body `hcl:",remain"`
}

// Load parses all .hcl files under path and merges them into one plan model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl plan files found at %s", path)
	}
	logger.Debug("Discovered HCL plan files.", "count", len(files))

	plan := &config.Plan{
		Phases:      make(map[string]*config.Phase),
		Checkpoints: make(map[string]*config.Checkpoint),
	}
	parser := hclparse.NewParser()
	settingsSeen := false

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", file, diags)
		}

		if root.Settings != nil {
			if settingsSeen {
				return nil, fmt.Errorf("duplicate settings block in %s", file)
			}
			settingsSeen = true
			plan.Settings = translateSettings(root.Settings)
		}

		for _, phase := range root.Phases {
			if _, dup := plan.Phases[phase.ID]; dup {
				return nil, fmt.Errorf("duplicate phase %q in %s", phase.ID, file)
			}
			translated, err := translatePhase(phase)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			plan.Phases[phase.ID] = translated
		}

		for _, cp := range root.Checkpoints {
			if _, dup := plan.Checkpoints[cp.Key]; dup {
				return nil, fmt.Errorf("duplicate checkpoint %q in %s", cp.Key, file)
			}
			translated, err := translateCheckpoint(cp)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			plan.Checkpoints[cp.Key] = translated
		}
	}

	plan.Settings.ApplyDefaults()
	logger.Debug("HCL plan loading complete.", "phases", len(plan.Phases), "checkpoints", len(plan.Checkpoints))
	return plan, nil
}
