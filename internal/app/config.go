package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath    string
	ProjectRoot string // overrides the plan's project_root when set

	RunAll bool
	Phase  string
	Group  string

	DryRun   bool
	Parallel bool
	FailFast bool // forces fail-fast on regardless of plan settings

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it ready for use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if !cfg.RunAll && cfg.Phase == "" {
		return nil, errors.New("either RunAll or a specific Phase must be selected")
	}
	if cfg.RunAll && cfg.Phase != "" {
		return nil, errors.New("RunAll and a specific Phase are mutually exclusive")
	}
	if cfg.Group != "" && cfg.Phase == "" {
		return nil, errors.New("a Group selection requires a Phase selection")
	}
	return &cfg, nil
}
