package command

import (
	"context"
	"os"
	"path/filepath"
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

	_, ok := reg.TaskHandler("command")
	assert.True(t, ok)
}

func TestExecute_SuccessCapturesOutput(t *testing.T) {
	t.Parallel()
	task := &config.Task{
		ID:     "t1",
		Params: map[string]cty.Value{"command": cty.StringVal("echo hello")},
	}

	result, err := (&handler{}).Execute(context.Background(), task, t.TempDir())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "t1", result.TaskID)
	assert.Contains(t, result.Output, "hello")
}

func TestExecute_RunsInProjectRoot(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "marker.txt"), []byte("x"), 0644))

	task := &config.Task{
		ID:     "t1",
		Params: map[string]cty.Value{"command": cty.StringVal("ls")},
	}

	result, err := (&handler{}).Execute(context.Background(), task, root)
	require.NoError(t, err)
	assert.Contains(t, result.Output, "marker.txt")
}

func TestExecute_NonzeroExitIsLogicalFailure(t *testing.T) {
	t.Parallel()
	task := &config.Task{
		ID:     "t1",
		Params: map[string]cty.Value{"command": cty.StringVal("echo nope >&2; exit 3")},
	}

	result, err := (&handler{}).Execute(context.Background(), task, t.TempDir())
	require.NoError(t, err, "a nonzero exit must not be a retryable fault")

	assert.False(t, result.Success)
	assert.Contains(t, result.Output, "nope")
	assert.NotEmpty(t, result.Error)
}

func TestExecute_MissingCommandParam(t *testing.T) {
	t.Parallel()
	result, err := (&handler{}).Execute(context.Background(), &config.Task{ID: "t1"}, t.TempDir())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, `"command"`)
}

func TestExecute_BlankCommandParam(t *testing.T) {
	t.Parallel()
	task := &config.Task{
		ID:     "t1",
		Params: map[string]cty.Value{"command": cty.StringVal("   ")},
	}

	result, err := (&handler{}).Execute(context.Background(), task, t.TempDir())
	require.NoError(t, err)
	assert.False(t, result.Success)
}
