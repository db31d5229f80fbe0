package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abilitycore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
content_dir: games/arena
log_level: debug
log_format: json
plain: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	want := Config{
		ContentDir:  "games/arena",
		LogLevel:    "debug",
		LogFormat:   "json",
		Plain:       true,
		HistorySize: 100, // not in file, default kept
	}
	assert.Equal(t, want, cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "content_dir: from-file\nhistory_size: 20\n")
	t.Setenv("ABILITYCORE_CONTENT_DIR", "from-env")
	t.Setenv("ABILITYCORE_PLAIN", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ContentDir)
	assert.True(t, cfg.Plain)
	assert.Equal(t, 20, cfg.HistorySize, "history_size comes from the file")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"bad yaml", "content_dir: [unterminated", nil, "parsing config"},
		{"bad env", "", map[string]string{"ABILITYCORE_HISTORY_SIZE": "lots"}, "parse env:"},
		{"bad format", "log_format: xml\n", nil, `log_format "xml"`},
		{"bad history", "history_size: 0\n", nil, "history_size 0"},
		{"empty content dir", "content_dir: \"\"\n", nil, "content_dir is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "ABILITYCORE_DOTENV_PROBE"
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o644))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestLoadDotEnv_ExistingVariableWins(t *testing.T) {
	t.Setenv("ABILITYCORE_LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ABILITYCORE_LOG_LEVEL=debug\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"

	logger := NewLogger(cfg, &buf)
	logger.Debug("hidden")
	logger.Info("shown", "ability", "firebolt")

	out := buf.String()
	assert.NotContains(t, out, "hidden", "debug line written at info level")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"ability":"firebolt"`)

	buf.Reset()
	NewLogger(Default(), &buf).Warn("careful")
	assert.Contains(t, buf.String(), "level=WARN msg=careful")
}
