// Package coverage provides the "coverage_threshold" validation check: it
// runs the project's coverage command and compares the reported percentage
// against the checkpoint's target.
package coverage

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

// defaultCommand is used when the check declares no command of its own.
const defaultCommand = "npm run test:coverage"

// percentPattern matches the last percentage figure in coverage output.
var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// Module registers the coverage threshold check.
type Module struct{}

// Register registers the check with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheckHandler("coverage_threshold", &check{})
}

type check struct{}

// Run executes the coverage command in the project root. When the check has
// a numeric target, the last percentage in the output must meet it; without
// a target (or without a parsable percentage) a clean exit is enough.
func (c *check) Run(ctx context.Context, validation *config.ValidationCheck, root string) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	cmdline, ok := validation.StringParam("command")
	if !ok {
		cmdline = defaultCommand
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	cmd.Dir = root
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Warn("Coverage command failed.", "command", cmdline, "error", err)
		return false, nil
	}

	matches := percentPattern.FindAllStringSubmatch(string(output), -1)
	if len(matches) == 0 || validation.Target == nil {
		return true, nil
	}

	percent, err := strconv.ParseFloat(matches[len(matches)-1][1], 64)
	if err != nil {
		return false, fmt.Errorf("unparsable coverage figure %q", matches[len(matches)-1][1])
	}

	target := float64(*validation.Target)
	logger.Debug("Coverage measured.", "percent", percent, "target", target)
	return percent >= target, nil
}
