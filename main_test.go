package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktimer/config"
	"tasktimer/errs"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// newRunner points every configuration source at a fresh data directory
// and returns a function executing one command line against it.
func newRunner(t *testing.T) (string, func(args ...string) result) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvFormat, "")
	t.Setenv(config.EnvLock, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	return dir, func(args ...string) result {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), args, io.NopCloser(strings.NewReader("")), &stdout, &stderr)
		return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
	}
}

func TestRunLifecycle(t *testing.T) {
	dir, run := newRunner(t)

	r := run("create", "working-on-my-app")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.Equal(t, "Task working-on-my-app created with id 1\n", r.stdout)
	assert.FileExists(t, filepath.Join(dir, "current.json"))

	r = run("set", "1", "45h30m")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "new timer: 45:30:00")

	r = run("start", "1")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)

	r = run("start", "1")
	assert.Equal(t, errs.ExitStateConflict, r.code)
	assert.Contains(t, r.stderr, "already running")

	r = run("list")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.True(t, strings.HasPrefix(r.stdout, "#[1] 'working-on-my-app': 45:30:"), r.stdout)

	r = run("archive", "1")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.Equal(t, "Task 1 archived with archive id 1\n", r.stdout)

	r = run("-t", "archive", "list", "-a")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "[1] 'working-on-my-app': 45:30:")
	assert.NotContains(t, r.stdout, "#[1]")

	r = run("--tasktype", "archive", "archive", "1")
	assert.Equal(t, errs.ExitInvalidInput, r.code)
}

func TestRunExitCodes(t *testing.T) {
	_, run := newRunner(t)
	require.Equal(t, errs.ExitOK, run("create", "a").code)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing task", []string{"stop", "9"}, errs.ExitNotFound},
		{"zero id", []string{"delete", "0"}, errs.ExitInvalidInput},
		{"zero id with time", []string{"add", "0", "5m"}, errs.ExitInvalidInput},
		{"not running", []string{"stop", "1"}, errs.ExitStateConflict},
		{"bad literal", []string{"add", "1", "30m1h"}, errs.ExitInvalidInput},
		{"unknown command", []string{"frobnicate"}, errs.ExitInvalidInput},
		{"bad task type", []string{"-t", "done", "list"}, errs.ExitInvalidInput},
		{"declined clear", []string{"clear"}, errs.ExitDeclined},
		{"bad format", []string{"--format", "xml", "list"}, errs.ExitConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(tt.args...)
			assert.Equal(t, tt.code, r.code, r.stderr)
			assert.True(t, strings.HasPrefix(r.stderr, "Error: "), r.stderr)
		})
	}
}

func TestRunClearYes(t *testing.T) {
	_, run := newRunner(t)
	require.Equal(t, errs.ExitOK, run("create", "a").code)
	require.Equal(t, errs.ExitOK, run("create", "b").code)

	r := run("clear", "-y")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)
	assert.Equal(t, "Tasks cleared.\n", r.stdout)

	r = run("create", "c")
	assert.Equal(t, "Task c created with id 3\n", r.stdout)
}

func TestRunFormatFlag(t *testing.T) {
	dir, run := newRunner(t)

	r := run("--format", "yaml", "create", "a")
	require.Equal(t, errs.ExitOK, r.code, r.stderr)

	data, err := os.ReadFile(filepath.Join(dir, "current.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: a")
	assert.NoFileExists(t, filepath.Join(dir, "current.json"))
}

func TestRunVersion(t *testing.T) {
	_, run := newRunner(t)

	r := run("--version")
	assert.Equal(t, errs.ExitOK, r.code)
	assert.Equal(t, "dev\n", r.stdout)
}

func TestTaskIDValidate(t *testing.T) {
	require.NoError(t, taskID(1).Validate())
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(taskID(0).Validate()))
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(taskID(-3).Validate()))
}
