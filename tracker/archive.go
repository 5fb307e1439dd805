package tracker

import (
	"time"

	"tasktimer/storage"
)

// Archive moves the task with id from src to dst and returns the id it
// received in dst. A running task is stopped first so its interval is
// kept. The moved task keeps its name, uid, total and last run time.
func Archive(src, dst *storage.TaskList, id int, now time.Time) (int, error) {
	task, err := src.Remove(id)
	if err != nil {
		return 0, err
	}
	if task.Running {
		stopTask(task, now)
	}
	return dst.Insert(task), nil
}
