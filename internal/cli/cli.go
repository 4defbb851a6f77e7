package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/phaserun/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("phaserun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
phaserun - A phased migration orchestrator with dependency-ordered execution.

Usage:
  phaserun [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a plan file (.hcl, .yaml, .yml) or a directory of .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	allFlag := flagSet.Bool("all", false, "Run every phase in dependency order.")
	aFlag := flagSet.Bool("a", false, "Run every phase in dependency order (shorthand).")
	phaseFlag := flagSet.String("phase", "", "Run a single phase by id.")
	groupFlag := flagSet.String("group", "", "Restrict a single-phase run to one group by id.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Walk the plan without invoking handlers.")
	sequentialFlag := flagSet.Bool("sequential", false, "Run parallel groups one task at a time.")
	failFastFlag := flagSet.Bool("fail-fast", false, "Stop at the first failed task regardless of plan settings.")
	projectRootFlag := flagSet.String("project-root", "", "Working directory for task handlers. Overrides the plan's setting.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *planFlag != "" {
		path = *planFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Plan path determined.", "path", path)

	if path == "" {
		slog.Debug("No plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	runAll := *allFlag || *aFlag
	if !runAll && *phaseFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "nothing to run: pass -all or -phase <id>"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PlanPath:    path,
		ProjectRoot: *projectRootFlag,
		RunAll:      runAll,
		Phase:       *phaseFlag,
		Group:       *groupFlag,
		DryRun:      *dryRunFlag,
		Parallel:    !*sequentialFlag,
		FailFast:    *failFastFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
