package commands

import (
	"context"
	"fmt"

	"tasktimer/storage"
)

func init() {
	Register(&Command{
		Name:        "/type",
		Description: "Show or switch the task type",
		Hidden:      true,
		Params: []Param{
			{Name: "task_type", Type: ParamTypeString, Description: "current or archive"},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			if len(args) > 0 {
				tt, err := storage.ParseTaskType(args[0])
				if err != nil {
					return false, err
				}
				env.TaskType = tt
			}
			fmt.Fprintf(env.Out, "Task type: %s\n", env.TaskType)
			return false, nil
		},
	})
}
