package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tasktimer/logfields"
	"tasktimer/storage"
	"tasktimer/tracker"
)

// Create adds a task and optionally starts its timer.
func Create(ctx context.Context, env *Env, name string, start bool) error {
	var task *storage.Task
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		var err error
		task, err = e.Create(name, start)
		return err
	})
	if err != nil {
		return err
	}
	slog.Debug("Task created", logfields.TaskID(task.ID), logfields.TaskName(task.Name))
	fmt.Fprintf(env.Out, "Task %s created with id %d\n", task.Name, task.ID)
	return nil
}

// Delete removes a task by id.
func Delete(ctx context.Context, env *Env, id int) error {
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		return e.Delete(id)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task %d deleted\n", id)
	return nil
}

// DeleteByName removes the first task with the given name.
func DeleteByName(ctx context.Context, env *Env, name string) error {
	var task *storage.Task
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		var err error
		task, err = e.DeleteByName(name)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task '%s' with id %d deleted\n", task.Name, task.ID)
	return nil
}

// Start starts a task timer.
func Start(ctx context.Context, env *Env, id int) error {
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		return e.Start(id)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task %d started\n", id)
	return nil
}

// Stop stops a task timer, keeping the elapsed time.
func Stop(ctx context.Context, env *Env, id int) error {
	var added int64
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		var err error
		added, err = e.Stop(id)
		return err
	})
	if err != nil {
		return err
	}
	slog.Debug("Task stopped", logfields.TaskID(id), logfields.Seconds(added))
	fmt.Fprintf(env.Out, "Task %d stopped\n", id)
	return nil
}

// Cancel stops a task timer, discarding the elapsed time.
func Cancel(ctx context.Context, env *Env, id int) error {
	var discarded int64
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		var err error
		discarded, err = e.Cancel(id)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task %d canceled, discarded %s\n", id, storage.FormatDuration(discarded))
	return nil
}

// Rename renames a task.
func Rename(ctx context.Context, env *Env, id int, name string) error {
	err := env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		return e.Rename(id, name)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task %d renamed to %s\n", id, name)
	return nil
}

func idHandler(run func(context.Context, *Env, int) error) func(context.Context, *Env, []string) (bool, error) {
	return func(ctx context.Context, env *Env, args []string) (bool, error) {
		id, err := ParseID(args[0])
		if err != nil {
			return false, err
		}
		return false, run(ctx, env, id)
	}
}

func init() {
	Register(&Command{
		Name:        "/create",
		Description: "Create a new task, -s starts its timer right away",
		Params: []Param{
			{Name: "-s", Type: ParamTypeString, Description: "Start the timer after creating the task"},
			{Name: "name", Type: ParamTypeString, Description: "Task name", Required: true, Rest: true},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			start := false
			if args[0] == "-s" || args[0] == "--start" {
				start = true
				args = args[1:]
			}
			return false, Create(ctx, env, strings.Join(args, " "), start)
		},
	})

	Register(&Command{
		Name:        "/delete",
		Description: "Delete a task",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
		},
		Handler: idHandler(Delete),
	})

	Register(&Command{
		Name:        "/delname",
		Description: "Delete the first task with the given name",
		Params: []Param{
			{Name: "name", Type: ParamTypeString, Description: "Task name", Required: true, Rest: true},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			return false, DeleteByName(ctx, env, strings.Join(args, " "))
		},
	})

	Register(&Command{
		Name:        "/start",
		Description: "Start running a task timer",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
		},
		Handler: idHandler(Start),
	})

	Register(&Command{
		Name:        "/stop",
		Description: "Stop running a task timer",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
		},
		Handler: idHandler(Stop),
	})

	Register(&Command{
		Name:        "/cancel",
		Description: "Stop a task timer without counting the time since it started",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
		},
		Handler: idHandler(Cancel),
	})

	Register(&Command{
		Name:        "/rename",
		Description: "Rename a task",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
			{Name: "name", Type: ParamTypeString, Description: "New task name", Required: true, Rest: true},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			id, err := ParseID(args[0])
			if err != nil {
				return false, err
			}
			return false, Rename(ctx, env, id, strings.Join(args[1:], " "))
		},
	})
}
