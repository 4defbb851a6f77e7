package manual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/registry"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	(&Module{}).Register(reg)

	_, ok := reg.TaskHandler("manual")
	assert.True(t, ok)
}

func TestExecute_SucceedsWithInstructions(t *testing.T) {
	t.Parallel()
	task := &config.Task{
		ID:     "t1",
		Name:   "Rotate credentials",
		Params: map[string]cty.Value{"instructions": cty.StringVal("Rotate the DB password in the vault.")},
	}

	result, err := (&handler{}).Execute(context.Background(), task, ".")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "requires manual action: Rotate credentials")
	assert.Contains(t, result.Message, "Rotate the DB password")
}

func TestExecute_FallsBackToDescription(t *testing.T) {
	t.Parallel()
	task := &config.Task{ID: "t1", Name: "Verify dashboards", Description: "Eyeball the graphs."}

	result, err := (&handler{}).Execute(context.Background(), task, ".")
	require.NoError(t, err)
	assert.Contains(t, result.Message, "Eyeball the graphs.")
}

func TestExecute_NoInstructionsStillSucceeds(t *testing.T) {
	t.Parallel()
	task := &config.Task{ID: "t1", Name: "Sign off"}

	result, err := (&handler{}).Execute(context.Background(), task, ".")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "requires manual action: Sign off", result.Message)
}
