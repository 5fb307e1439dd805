package commands

import (
	"context"
	"fmt"

	"tasktimer/errs"
	"tasktimer/storage"
)

// Archive moves a current task into the archive.
func Archive(ctx context.Context, env *Env, id int) error {
	if env.TaskType == storage.TaskTypeArchive {
		return errs.New(errs.KindInvalidInput, "cannot archive archived tasks")
	}
	newID, err := env.Tracker.ArchiveTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Task %d archived with archive id %d\n", id, newID)
	return nil
}

// Clear removes every task of the selected type. Unless yes is set the
// user has to confirm first.
func Clear(ctx context.Context, env *Env, yes bool) error {
	if !yes {
		ok, err := env.confirm(fmt.Sprintf("Do you want to proceed clearing all %s tasks? (Y/N)", env.TaskType))
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(errs.KindConfirmationDeclined, "clearing canceled")
		}
	}
	if _, err := env.Tracker.Clear(ctx, env.TaskType); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "Tasks cleared.")
	return nil
}

func init() {
	Register(&Command{
		Name:        "/archive",
		Description: "Move a current task into the archive",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "Task id", Required: true},
		},
		Handler: idHandler(Archive),
	})

	Register(&Command{
		Name:        "/clear",
		Description: "Delete every task of the selected type",
		Destructive: true,
		Params: []Param{
			{Name: "-y", Type: ParamTypeString, Description: "Skip the confirmation"},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			yes := false
			for _, arg := range args {
				if arg != "-y" && arg != "--yes" {
					return false, usageError("/clear")
				}
				yes = true
			}
			return false, Clear(ctx, env, yes)
		},
	})
}
