package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phaserun/internal/config"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const legacyPlan = `
orchestrator:
  name: db-migration
  version: "2.0"
  project_root: /srv/app
  settings:
    max_parallel_tasks: 6
    retry_attempts: 2
    retry_delay_seconds: 1
    fail_fast: true

phase_1:
  name: Preparation
  description: Get the ground ready.
  groups:
    schema:
      execution: sequential
      tasks:
        - id: create_tables
          type: command
          priority: critical
          params:
            command: make migrate
    seed:
      execution: parallel
      max_parallel: 2
      depends_on: [schema]
      tasks:
        - id: seed_users
          type: command
        - id: seed_orders
          type: command

phase_2:
  name: Cutover
  depends_on: [phase_1]
  groups:
    flip:
      tasks:
        - id: switch_traffic
          type: manual
          params:
            instructions: Flip the load balancer.

checkpoints:
  after_phase_1:
    name: Post-preparation gate
    validations:
      - type: coverage_threshold
        target: 80
        params:
          command: make coverage
      - type: deployment_working
        params:
          urls:
            - http://a.internal/health
            - http://b.internal/health
`

func TestLoad_LegacyLayout(t *testing.T) {
	t.Parallel()
	path := writePlan(t, legacyPlan)

	plan, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "db-migration", plan.Settings.Name)
	assert.Equal(t, "/srv/app", plan.Settings.ProjectRoot)
	assert.Equal(t, 6, plan.Settings.MaxParallelTasks)
	assert.True(t, plan.Settings.FailFast)

	require.Len(t, plan.Phases, 2)
	phase := plan.Phases["phase_1"]
	require.NotNil(t, phase)
	assert.Equal(t, "Preparation", phase.Name)

	seed := phase.Groups["seed"]
	require.NotNil(t, seed)
	assert.Equal(t, config.ExecutionParallel, seed.Execution)
	assert.Equal(t, 2, seed.MaxParallel)
	assert.Equal(t, []string{"schema"}, seed.DependsOn)

	task := phase.Groups["schema"].Tasks[0]
	assert.Equal(t, "create_tables", task.ID)
	cmd, ok := task.StringParam("command")
	require.True(t, ok)
	assert.Equal(t, "make migrate", cmd)

	assert.Equal(t, []string{"phase_1"}, plan.Phases["phase_2"].DependsOn)

	cp := plan.Checkpoints["after_phase_1"]
	require.NotNil(t, cp)
	require.Len(t, cp.Validations, 2)
	assert.Equal(t, "coverage_threshold", cp.Validations[0].Kind)
	require.NotNil(t, cp.Validations[0].Target)
	assert.Equal(t, 80, *cp.Validations[0].Target)

	urls, ok := cp.Validations[1].StringsParam("urls")
	require.True(t, ok)
	assert.Len(t, urls, 2)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Parallel()
	path := writePlan(t, `
phase_1:
  groups:
    g:
      tasks:
        - id: t1
          type: command
`)

	plan, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRetryAttempts, plan.Settings.RetryAttempts)
	assert.Equal(t, ".", plan.Settings.ProjectRoot)

	group := plan.Phases["phase_1"].Groups["g"]
	assert.Equal(t, config.ExecutionSequential, group.Execution)
	assert.Equal(t, "phase_1", plan.Phases["phase_1"].Name)
	assert.Equal(t, config.PriorityMedium, group.Tasks[0].Priority)
	assert.Equal(t, "t1", group.Tasks[0].Name)
}

func TestLoad_IgnoresUnrecognizedTopLevelKeys(t *testing.T) {
	t.Parallel()
	path := writePlan(t, `
notes: these are not part of the plan
phase_1:
  groups:
    g:
      tasks:
        - id: t1
          type: command
`)

	plan, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, plan.Phases, 1)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := writePlan(t, "phase_1: [\n  broken")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidPhaseSection(t *testing.T) {
	t.Parallel()
	path := writePlan(t, `
phase_1: just a string
`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid phase "phase_1"`)
}
