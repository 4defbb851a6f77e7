package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/hclcfg"
	"github.com/vk/phaserun/internal/registry"
	"github.com/vk/phaserun/internal/testutil"
	"github.com/vk/phaserun/internal/yamlcfg"
)

// HarnessResult holds the outcomes of an end-to-end test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *App
}

// RunPlanTest provides a standardized harness for end-to-end tests. It writes
// the given plan files into a temporary directory, starts the app with the
// loader matching the files' format, and runs every phase. Startup panics are
// recovered into the returned error.
func RunPlanTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	require.NotEmpty(t, files, "harness requires at least one plan file")

	// A YAML plan is a single file; HCL plans load the whole directory.
	var yamlPath string
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
		switch filepath.Ext(name) {
		case ".yaml", ".yml":
			yamlPath = filePath
		}
	}

	var loader config.Loader
	planPath := tmpDir
	if yamlPath != "" {
		loader = yamlcfg.NewLoader()
		planPath = yamlPath
	} else {
		loader = hclcfg.NewLoader()
	}

	appConfig, err := NewConfig(Config{
		PlanPath:    planPath,
		ProjectRoot: tmpDir,
		RunAll:      true,
		Parallel:    true,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}

	var testApp *App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = NewApp(logBuffer, appConfig, loader, modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background(), appConfig)

	if os.Getenv("PHASERUN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
