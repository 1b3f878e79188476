package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expc/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

// setupApp creates an App over cfg whose logs and diagnostics are captured.
func setupApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()
	logs := &testutil.SafeBuffer{}
	diags := &testutil.SafeBuffer{}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	a, err := NewApp(logs, diags, &cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, a.Close())
		if os.Getenv("EXPC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, logs, diags
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "minimal", cfg: Config{SourcePath: "exp.xlsx"}},
		{name: "missing source", cfg: Config{}, wantErr: "SourcePath"},
		{name: "serve with output", cfg: Config{SourcePath: "exp.xlsx", ServeAddr: "localhost:8080", OutPath: "x.html"}, wantErr: "preview"},
		{name: "serve address with spaces", cfg: Config{SourcePath: "exp.xlsx", ServeAddr: " :8080"}, wantErr: "spaces"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.SourcePath, cfg.SourcePath)
		})
	}
}

func TestNewApp_LogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "expc.log")
	source := testutil.WriteWorkbook(t, dir, "exp.yaml", testutil.GreetingWorkbook)

	a, logs, _ := setupApp(t, Config{SourcePath: source, LogFile: logPath, LogFormat: "text"})
	code, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)

	assert.Contains(t, logs.String(), "msg=\"Compilation finished.\"")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Compilation finished."`)
}

func TestNewApp_LogFileUnwritable(t *testing.T) {
	cfg := &Config{SourcePath: "exp.yaml", LogFile: filepath.Join(t.TempDir(), "missing", "expc.log")}
	_, err := NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestWorse(t *testing.T) {
	testCases := []struct {
		a, b, want int
	}{
		{ExitOK, ExitOK, ExitOK},
		{ExitOK, ExitWarnings, ExitWarnings},
		{ExitWarnings, ExitErrors, ExitErrors},
		{ExitErrors, ExitWarnings, ExitErrors},
		{ExitErrors, ExitInternal, ExitInternal},
		{ExitInternal, ExitOK, ExitInternal},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, worse(tc.a, tc.b), "worse(%d, %d)", tc.a, tc.b)
	}
}
