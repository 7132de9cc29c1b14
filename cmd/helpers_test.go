// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/onegui/internal/config"
	"github.com/xkilldash9x/onegui/internal/observability"
)

const testSheet = `
screen { childLayout: right; backgroundColor: navy; }
a, b   { width: 50%; height: 50px; }
a      { backgroundColor: red; }
b      { backgroundColor: lime; }
`

const testScene = `
id: screen
children:
  - {id: a, kind: panel}
  - {id: b, text: "hello"}
`

// resetForTest isolates a test from the global logger, the working directory
// and ONEGUI_ environment variables.
func resetForTest(t *testing.T) string {
	t.Helper()
	observability.ResetForTest()
	observability.InitializeLogger(config.LoggerConfig{Level: "fatal", Format: "console", ServiceName: "test"})
	t.Cleanup(observability.ResetForTest)

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// newTestConfig returns the default configuration with a small viewport.
func newTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.SetViewport(200, 100)
	cfg.AssetsCfg.Root = "."
	cfg.WatchCfg.Debounce = 20 * time.Millisecond
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs a fresh command tree and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCommand()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
