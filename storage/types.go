package storage

import (
	"math"
	"time"

	"tasktimer/errs"
)

// TaskType selects one of the two independent task collections.
type TaskType string

const (
	TaskTypeCurrent TaskType = "current"
	TaskTypeArchive TaskType = "archive"
)

// TaskTypes lists all valid task types.
var TaskTypes = []TaskType{TaskTypeCurrent, TaskTypeArchive}

// ParseTaskType validates a task type name.
func ParseTaskType(s string) (TaskType, error) {
	for _, tt := range TaskTypes {
		if string(tt) == s {
			return tt, nil
		}
	}
	return "", errs.New(errs.KindInvalidInput, "could not find a valid task type %q (current, archive)", s)
}

// Task is a named accumulator of elapsed work time.
//
// A running task has Running set and LastRun holding the start of the
// in-progress interval. LastRun is kept after the task stops so listings
// can show when it last ran.
type Task struct {
	ID           int        `json:"id" yaml:"id" toml:"id"`
	UID          string     `json:"uid,omitempty" yaml:"uid,omitempty" toml:"uid,omitempty"`
	Name         string     `json:"name" yaml:"name" toml:"name"`
	TotalSeconds int64      `json:"total_duration_seconds" yaml:"total_duration_seconds" toml:"total_duration_seconds"`
	Running      bool       `json:"running" yaml:"running" toml:"running"`
	LastRun      *time.Time `json:"last_run,omitempty" yaml:"last_run,omitempty" toml:"last_run,omitempty"`
}

// StartedAt returns the start of the running interval, if any.
func (t *Task) StartedAt() (time.Time, bool) {
	if !t.Running || t.LastRun == nil {
		return time.Time{}, false
	}
	return *t.LastRun, true
}

// Elapsed returns the whole seconds of the in-progress interval at now.
// A start time in the future counts as zero.
func (t *Task) Elapsed(now time.Time) int64 {
	started, ok := t.StartedAt()
	if !ok {
		return 0
	}
	d := now.Sub(started)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Displayed returns the accumulated total plus any running interval,
// saturating at math.MaxInt64.
func (t *Task) Displayed(now time.Time) int64 {
	return addSaturating(t.TotalSeconds, t.Elapsed(now))
}

// Entry is a computed listing row.
type Entry struct {
	ID        int
	Name      string
	Running   bool
	Displayed int64
	LastRun   *time.Time
}

// TotalDisplayed sums the displayed seconds of entries.
func TotalDisplayed(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total = addSaturating(total, e.Displayed)
	}
	return total
}

// addSaturating adds two non-negative second counts.
func addSaturating(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
