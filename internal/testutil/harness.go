package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/app"
	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/registry"
)

// logsEnv enables dumping captured logs at the end of each test.
const logsEnv = "GOMLGO_TEST_LOGS"

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

// Logger returns a debug-level text logger capturing into a SafeBuffer.
func Logger(t *testing.T) (*slog.Logger, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv(logsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// Context returns a background context carrying a capturing logger.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	logger, buf := Logger(t)
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
	return dir
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Output    string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a temporary document directory and
// runs a full App over it with debug logging. When no modules are given the
// bundled ones are used.
func RunIntegrationTest(t *testing.T, files map[string]string, output string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, output, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, output string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	cfg, err := app.NewConfig(app.Config{
		DocumentPath: WriteFiles(t, files),
		Output:       output,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv(logsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, logBuffer, cfg, modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Output:    outBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
