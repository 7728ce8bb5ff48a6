package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/hcl"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
	// Dir is the temporary directory holding the level files.
	Dir string
}

// RunLevelTest writes files into a temporary level directory, builds an app
// over it with cfg and runs it once. An empty LevelPath in cfg points at the
// temporary directory when files is not empty, and a zero Tick runs at 1ms.
func RunLevelTest(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.LevelPath == "" && len(files) > 0 {
		cfg.LevelPath = dir
	}
	if cfg.Tick == 0 {
		cfg.Tick = time.Millisecond
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("ROBOTRACK_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	testApp, err := app.NewApp(out, &cfg, hcl.NewLoader(), opts...)
	if err != nil {
		return &HarnessResult{Output: out.String(), Err: err, Dir: dir}
	}
	t.Cleanup(func() { testApp.Close() })

	runErr := testApp.Run(ctx)
	return &HarnessResult{Output: out.String(), Err: runErr, App: testApp, Dir: dir}
}
