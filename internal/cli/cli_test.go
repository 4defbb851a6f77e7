package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RunAllShorthand(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, exit, err := Parse([]string{"-a", "plan.yaml"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "plan.yaml", cfg.PlanPath)
	assert.True(t, cfg.RunAll)
	assert.True(t, cfg.Parallel)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_PlanFlagBeatsPositional(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, _, err := Parse([]string{"-all", "-plan", "from-flag.hcl", "positional.hcl"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.hcl", cfg.PlanPath)
}

func TestParse_SinglePhaseWithGroup(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, _, err := Parse([]string{"-phase", "phase_2", "-group", "schema", "plan.hcl"}, &out)
	require.NoError(t, err)

	assert.False(t, cfg.RunAll)
	assert.Equal(t, "phase_2", cfg.Phase)
	assert.Equal(t, "schema", cfg.Group)
}

func TestParse_OptionFlags(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, _, err := Parse([]string{
		"-all", "-dry-run", "-sequential", "-fail-fast",
		"-project-root", "/srv/app", "-log-format", "json", "-log-level", "debug",
		"plan.hcl",
	}, &out)
	require.NoError(t, err)

	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.Parallel)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, "/srv/app", cfg.ProjectRoot)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, exit, err := Parse([]string{}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoModeSelected(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"plan.hcl"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "-all or -phase")
}

func TestParse_AllAndPhaseAreExclusive(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"-all", "-phase", "phase_1", "plan.hcl"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_GroupRequiresPhase(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"-all", "-group", "schema", "plan.hcl"}, &out)
	require.Error(t, err)
	assert.IsType(t, &ExitError{}, err)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"-all", "-log-format", "xml", "plan.hcl"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"-all", "-log-level", "loud", "plan.hcl"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-level")
}

func TestParse_HelpExitsCleanly(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, _, err := Parse([]string{"-frobnicate"}, &out)
	require.Error(t, err)
	assert.IsType(t, &ExitError{}, err)
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()
	err := &ExitError{Code: 2, Message: "bad flag"}
	assert.Equal(t, "bad flag", err.Error())
}
