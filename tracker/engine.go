// Package tracker implements the per-task timer state machine and the
// time arithmetic applied to a loaded task list.
//
// Running state is data only: a task remembers when its current interval
// started, and elapsed time is computed against the clock on every read.
// Nothing ticks in the background.
package tracker

import (
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"tasktimer/errs"
	"tasktimer/storage"
)

// Engine applies timer operations to one task list. Every method either
// succeeds or leaves the list unchanged.
type Engine struct {
	list  *storage.TaskList
	clock clockwork.Clock
}

// NewEngine wraps list. A nil clock means the real clock.
func NewEngine(list *storage.TaskList, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{list: list, clock: clock}
}

// Tasks returns the underlying list.
func (e *Engine) Tasks() *storage.TaskList {
	return e.list
}

// Create adds a task, optionally already running.
func (e *Engine) Create(name string, startRunning bool) (*storage.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.New(errs.KindInvalidInput, "task name must not be empty")
	}
	return e.list.Create(name, startRunning, e.clock.Now()), nil
}

// Delete removes the task with id.
func (e *Engine) Delete(id int) error {
	return e.list.Delete(id)
}

// DeleteByName removes the first task named name.
func (e *Engine) DeleteByName(name string) (*storage.Task, error) {
	return e.list.DeleteByName(name)
}

// Rename renames the task with id.
func (e *Engine) Rename(id int, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errs.New(errs.KindInvalidInput, "task name must not be empty")
	}
	return e.list.Rename(id, newName)
}

// Clear removes every task and returns how many were removed.
func (e *Engine) Clear() int {
	n := e.list.Len()
	e.list.Clear()
	return n
}

// Entries returns the listing rows, all tasks or only running ones.
func (e *Engine) Entries(includeAll bool) []storage.Entry {
	now := e.clock.Now()
	if includeAll {
		return e.list.List(now)
	}
	return e.list.Running(now)
}

// Displayed returns the current displayed total of the task with id.
func (e *Engine) Displayed(id int) (int64, error) {
	task, err := e.list.Get(id)
	if err != nil {
		return 0, err
	}
	return task.Displayed(e.clock.Now()), nil
}

// Start moves a stopped task to running.
func (e *Engine) Start(id int) error {
	task, err := e.list.Get(id)
	if err != nil {
		return err
	}
	if task.Running {
		return errs.AlreadyRunning(id)
	}
	now := e.clock.Now()
	task.Running = true
	task.LastRun = &now
	return nil
}

// Stop ends the running interval and folds it into the total. It returns
// the seconds that were added.
func (e *Engine) Stop(id int) (int64, error) {
	task, err := e.list.Get(id)
	if err != nil {
		return 0, err
	}
	if !task.Running {
		return 0, errs.NotRunning(id)
	}
	return stopTask(task, e.clock.Now()), nil
}

// Cancel ends the running interval without counting it. It returns the
// seconds that were discarded.
func (e *Engine) Cancel(id int) (int64, error) {
	task, err := e.list.Get(id)
	if err != nil {
		return 0, err
	}
	if !task.Running {
		return 0, errs.NotRunning(id)
	}
	discarded := task.Elapsed(e.clock.Now())
	task.Running = false
	return discarded, nil
}

// Add increases the accumulated total by delta seconds and returns the
// new displayed total.
func (e *Engine) Add(id int, delta int64) (int64, error) {
	task, err := e.lookupWithSeconds(id, delta)
	if err != nil {
		return 0, err
	}
	now := e.clock.Now()
	if delta > math.MaxInt64-task.Displayed(now) {
		return 0, errs.New(errs.KindInvalidDurationLiteral, "adding %d seconds to task %d overflows", delta, id)
	}
	task.TotalSeconds += delta
	return task.Displayed(now), nil
}

// Sub decreases the accumulated total by delta seconds, stopping at zero.
// A running interval is left untouched. It returns the new displayed total.
func (e *Engine) Sub(id int, delta int64) (int64, error) {
	task, err := e.lookupWithSeconds(id, delta)
	if err != nil {
		return 0, err
	}
	task.TotalSeconds = max(task.TotalSeconds-delta, 0)
	return task.Displayed(e.clock.Now()), nil
}

// Set replaces the accumulated total. A running interval keeps going on
// top of the new baseline. It returns the new displayed total.
func (e *Engine) Set(id int, total int64) (int64, error) {
	task, err := e.lookupWithSeconds(id, total)
	if err != nil {
		return 0, err
	}
	now := e.clock.Now()
	if total > math.MaxInt64-task.Elapsed(now) {
		return 0, errs.New(errs.KindInvalidDurationLiteral, "setting task %d to %d seconds overflows", id, total)
	}
	task.TotalSeconds = total
	return task.Displayed(now), nil
}

func (e *Engine) lookupWithSeconds(id int, seconds int64) (*storage.Task, error) {
	task, err := e.list.Get(id)
	if err != nil {
		return nil, err
	}
	if seconds < 0 {
		return nil, errs.New(errs.KindInvalidInput, "duration must not be negative, got %d seconds", seconds)
	}
	return task, nil
}

// stopTask folds the running interval into the total and returns the
// seconds added.
func stopTask(task *storage.Task, now time.Time) int64 {
	elapsed := task.Elapsed(now)
	task.TotalSeconds += elapsed
	task.Running = false
	return elapsed
}
