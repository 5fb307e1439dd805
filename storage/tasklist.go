package storage

import (
	"time"

	"github.com/google/uuid"

	"tasktimer/errs"
)

// TaskList is the ordered task collection of one task type together with
// its id allocator. Ids are never reused, not even after Clear.
type TaskList struct {
	Tasks  []*Task `json:"tasks" yaml:"tasks" toml:"tasks"`
	NextID int     `json:"next_id" yaml:"next_id" toml:"next_id"`
}

// NewTaskList returns an empty list whose first id is 1.
func NewTaskList() *TaskList {
	return &TaskList{Tasks: []*Task{}, NextID: 1}
}

// normalize restores the invariants of lists read from disk: NextID is
// at least 1 and greater than every stored id, totals are not negative.
func (l *TaskList) normalize() {
	if l.Tasks == nil {
		l.Tasks = []*Task{}
	}
	if l.NextID < 1 {
		l.NextID = 1
	}
	for _, t := range l.Tasks {
		if t.ID >= l.NextID {
			l.NextID = t.ID + 1
		}
		if t.Running && t.LastRun == nil {
			t.Running = false
		}
		if t.TotalSeconds < 0 {
			t.TotalSeconds = 0
		}
	}
}

func (l *TaskList) allocateID() int {
	id := l.NextID
	l.NextID++
	return id
}

// Create appends a new task and returns it. A task created running
// starts its interval at now.
func (l *TaskList) Create(name string, startRunning bool, now time.Time) *Task {
	task := &Task{
		ID:   l.allocateID(),
		UID:  uuid.NewString(),
		Name: name,
	}
	if startRunning {
		started := now
		task.Running = true
		task.LastRun = &started
	}
	l.Tasks = append(l.Tasks, task)
	return task
}

// Insert appends an existing task under a freshly allocated id and
// returns that id.
func (l *TaskList) Insert(task *Task) int {
	task.ID = l.allocateID()
	l.Tasks = append(l.Tasks, task)
	return task.ID
}

func (l *TaskList) indexOf(id int) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with id.
func (l *TaskList) Get(id int) (*Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return nil, errs.TaskNotFound(id)
	}
	return l.Tasks[i], nil
}

// Delete removes the task with id.
func (l *TaskList) Delete(id int) error {
	_, err := l.Remove(id)
	return err
}

// Remove removes the task with id and returns it.
func (l *TaskList) Remove(id int) (*Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return nil, errs.TaskNotFound(id)
	}
	task := l.Tasks[i]
	l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
	return task, nil
}

// DeleteByName removes the first task in list order named name and
// returns it. Other tasks sharing the name are left alone.
func (l *TaskList) DeleteByName(name string) (*Task, error) {
	for _, t := range l.Tasks {
		if t.Name == name {
			return l.Remove(t.ID)
		}
	}
	return nil, errs.TaskNameNotFound(name)
}

// Rename changes the name of the task with id.
func (l *TaskList) Rename(id int, newName string) error {
	task, err := l.Get(id)
	if err != nil {
		return err
	}
	task.Name = newName
	return nil
}

// Clear removes every task. NextID is left untouched.
func (l *TaskList) Clear() {
	l.Tasks = []*Task{}
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.Tasks)
}

// List computes a listing row for every task, in list order.
func (l *TaskList) List(now time.Time) []Entry {
	entries := make([]Entry, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		entries = append(entries, Entry{
			ID:        t.ID,
			Name:      t.Name,
			Running:   t.Running,
			Displayed: t.Displayed(now),
			LastRun:   t.LastRun,
		})
	}
	return entries
}

// Running is List restricted to running tasks.
func (l *TaskList) Running(now time.Time) []Entry {
	var entries []Entry
	for _, e := range l.List(now) {
		if e.Running {
			entries = append(entries, e)
		}
	}
	return entries
}

// Clone returns a deep copy of the list.
func (l *TaskList) Clone() *TaskList {
	c := &TaskList{Tasks: make([]*Task, 0, len(l.Tasks)), NextID: l.NextID}
	for _, t := range l.Tasks {
		cp := *t
		if t.LastRun != nil {
			lr := *t.LastRun
			cp.LastRun = &lr
		}
		c.Tasks = append(c.Tasks, &cp)
	}
	return c
}
