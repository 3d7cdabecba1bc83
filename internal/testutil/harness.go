package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/app"
)

// HarnessResult holds the outcomes of an in-process simulation run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// WriteFiles writes files, keyed by relative path, under a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// RunSimulation writes files to a temporary directory, points a default
// Config at graphFile inside it, lets configure adjust the Config and runs
// the App. Startup panics are reported through HarnessResult.Err.
func RunSimulation(ctx context.Context, t *testing.T, files map[string]string, graphFile string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg := app.DefaultConfig()
	cfg.GraphPath = filepath.Join(dir, graphFile)
	cfg.LogLevel = "debug"
	if configure != nil {
		configure(&cfg)
	}

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("WETWARE_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	var (
		testApp  *app.App
		panicErr any
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig, nil)
	}()
	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}
