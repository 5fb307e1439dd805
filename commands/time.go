package commands

import (
	"context"
	"fmt"

	"tasktimer/storage"
	"tasktimer/tracker"
)

// Add adds a duration literal to a task.
func Add(ctx context.Context, env *Env, id int, literal string) error {
	return adjust(ctx, env, id, literal, (*tracker.Engine).Add, "Added %s to task with id %d, new timer: %s\n")
}

// Sub subtracts a duration literal from a task, stopping at zero.
func Sub(ctx context.Context, env *Env, id int, literal string) error {
	return adjust(ctx, env, id, literal, (*tracker.Engine).Sub, "Subtracted %s from task with id %d, new timer: %s\n")
}

// Set replaces the accumulated time of a task.
func Set(ctx context.Context, env *Env, id int, literal string) error {
	return adjust(ctx, env, id, literal, (*tracker.Engine).Set, "New time %s set for task %d, new timer: %s\n")
}

func adjust(ctx context.Context, env *Env, id int, literal string,
	op func(*tracker.Engine, int, int64) (int64, error), format string) error {
	// Parse before touching the store: a bad literal never loads a list.
	seconds, err := storage.ParseDuration(literal)
	if err != nil {
		return err
	}
	var shown int64
	err = env.Tracker.Update(ctx, env.TaskType, func(e *tracker.Engine) error {
		var err error
		shown, err = op(e, id, seconds)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, format, storage.FormatLiteral(seconds), id, storage.FormatDuration(shown))
	return nil
}

func timeHandler(run func(context.Context, *Env, int, string) error) func(context.Context, *Env, []string) (bool, error) {
	return func(ctx context.Context, env *Env, args []string) (bool, error) {
		id, err := ParseID(args[0])
		if err != nil {
			return false, err
		}
		return false, run(ctx, env, id, args[1])
	}
}

var timeParams = []Param{
	{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
	{Name: "time", Type: ParamTypeDuration, Description: "Duration such as 1d2h30m15s", Required: true},
}

func init() {
	Register(&Command{
		Name:        "/add",
		Description: "Add time to a task",
		Params:      timeParams,
		Handler:     timeHandler(Add),
	})

	Register(&Command{
		Name:        "/sub",
		Description: "Subtract time from a task",
		Params:      timeParams,
		Handler:     timeHandler(Sub),
	})

	Register(&Command{
		Name:        "/set",
		Description: "Set the time of a task",
		Params:      timeParams,
		Handler:     timeHandler(Set),
	})
}
