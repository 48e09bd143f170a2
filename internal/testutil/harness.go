package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/cslgen/internal/app"
	"github.com/specialistvlad/cslgen/internal/hcl"
	"github.com/specialistvlad/cslgen/internal/render"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end run.
type HarnessResult struct {
	Dir        string // temporary root the files were written to
	OutputPath string
	Stdout     string
	LogOutput  string
	Err        error
}

// Output reads the file the run wrote. It fails the test if there is none.
func (r *HarnessResult) Output(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(r.OutputPath)
	require.NoError(t, err)
	return string(data)
}

// WriteFiles writes files (relative path to content) below a fresh
// temporary directory and returns it.
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

// RunApp writes files to a temporary directory and runs the full app on
// cfg with the real HCL parser and skin loader. Relative InputPath, Skin
// files and OutputPath are resolved against that directory; an empty
// OutputPath becomes "out" in it.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg.InputPath = filepath.Join(dir, cfg.InputPath)
	if cfg.OutputPath == "" {
		cfg.OutputPath = "out"
	}
	cfg.OutputPath = filepath.Join(dir, cfg.OutputPath)
	if _, ok := files[cfg.Skin]; ok {
		cfg.Skin = filepath.Join(dir, cfg.Skin)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	stdout, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := app.NewApp(stdout, logs, config, hcl.NewParser(), render.NewLoader())
	runErr := testApp.Run(context.Background())

	if os.Getenv("CSLGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Dir:        dir,
		OutputPath: config.OutputPath,
		Stdout:     stdout.String(),
		LogOutput:  logs.String(),
		Err:        runErr,
	}
}
