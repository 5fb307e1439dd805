package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tasktimer/storage"
)

func TestListOutput(t *testing.T) {
	te := setupTestEnv(t)
	te.mustRun(t, "/create working-on-my-app")
	te.mustRun(t, "/set 1 45h30m")
	te.mustRun(t, "/create -s second")
	te.clock.Advance(20*time.Minute + 2*time.Second)

	output := te.mustRun(t, "/list -a")
	expected := "[1] 'working-on-my-app': 45:30:00\n#[2] 'second': 0:20:02\n\nTotal: 45:50:02\n"
	if output != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, output)
	}

	output = te.mustRun(t, "/list")
	expected = "#[2] 'second': 0:20:02\n\nTotal: 0:20:02\n"
	if output != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, output)
	}
}

func TestListLastRun(t *testing.T) {
	te := setupTestEnv(t)
	te.mustRun(t, "/create never-started")
	te.mustRun(t, "/create -s started")

	output := te.mustRun(t, "/list -al")
	stamp := epoch.Local().Format(LastRunLayout)
	if !strings.Contains(output, "#[2] 'started': 0:00:00 - Last time: "+stamp) {
		t.Errorf("Expected last run timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[1] 'never-started': 0:00:00\n") {
		t.Errorf("Task without last run should have no timestamp, got: %s", output)
	}
}

func TestListEmpty(t *testing.T) {
	te := setupTestEnv(t)

	if output := te.mustRun(t, "/list"); output != "There are no running tasks.\n" {
		t.Errorf("Expected no running tasks, got: %s", output)
	}
	if output := te.mustRun(t, "/list --all"); output != "There are no tasks.\n" {
		t.Errorf("Expected no tasks, got: %s", output)
	}
}

func TestPrintEntriesNeverNegative(t *testing.T) {
	var buf bytes.Buffer
	PrintEntries(&buf, []storage.Entry{{ID: 1, Name: "x", Displayed: 0}}, true, false)

	if !strings.Contains(buf.String(), "Total: 0:00:00") {
		t.Errorf("Expected zero total, got: %s", buf.String())
	}
}
