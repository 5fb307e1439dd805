package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktimer/errs"
	"tasktimer/storage"
)

// isolate clears every TASKTIMER_* variable and points the default config
// lookup at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, EnvDataDir, EnvFormat, EnvLock, EnvLogLevel} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Lock)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, Default().DataDir, cfg.DataDir)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "data_dir: data\nformat: yaml\nlock: false\nlog_level: debug\n")

	cfg, err := Load(LoadOptions{Path: path, EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir, "relative data_dir is resolved against the file")
	assert.Equal(t, storage.FormatYAML, cfg.StoreFormat())
	assert.False(t, cfg.Lock)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, filepath.Join(dir, "data", "archive.yaml"), cfg.StorePath(storage.TaskTypeArchive))
}

func TestLoadFileFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tt.yaml")
	writeFile(t, path, "format: toml\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load(LoadOptions{EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, storage.FormatTOML, cfg.StoreFormat())
}

func TestLoadDefaultPathIsOptional(t *testing.T) {
	isolate(t)
	writeFile(t, DefaultPath(), "format: yaml\n")

	cfg, err := Load(LoadOptions{EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.yaml"), EnvFiles: []string{}})
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "data_directory: /tmp\n")

	_, err := Load(LoadOptions{Path: path, EnvFiles: []string{}})
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "data_dir: /from/file\nformat: yaml\n")
	t.Setenv(EnvDataDir, "/from/env")
	t.Setenv(EnvLock, "false")

	cfg, err := Load(LoadOptions{Path: path, EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, "yaml", cfg.Format)
	assert.False(t, cfg.Lock)
}

func TestDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, "TASKTIMER_FORMAT=toml\nTASKTIMER_LOG_LEVEL=info\n")
	t.Setenv(EnvLogLevel, "error")
	// isolate set the format to empty; unset it so the dotenv value applies.
	require.NoError(t, os.Unsetenv(EnvFormat))
	t.Cleanup(func() { _ = os.Unsetenv(EnvFormat) })

	cfg, err := Load(LoadOptions{EnvFiles: []string{envFile, filepath.Join(t.TempDir(), "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Format)
	assert.Equal(t, slog.LevelError, cfg.Level())
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"format", EnvFormat, "xml"},
		{"lock", EnvLock, "sometimes"},
		{"level", EnvLogLevel, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(LoadOptions{EnvFiles: []string{}})
			require.ErrorIs(t, err, errs.ErrConfig)
		})
	}
}
