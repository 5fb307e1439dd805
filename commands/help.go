package commands

import (
	"context"
	"fmt"
)

func init() {
	Register(&Command{
		Name:        "/help",
		Description: "Show available commands",
		Hidden:      true,
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			fmt.Fprintln(env.Out, "Available commands:")

			for _, cmd := range List() {
				if cmd.Hidden {
					continue
				}
				desc := cmd.Description
				if cmd.Destructive {
					desc += " (asks for confirmation)"
				}
				fmt.Fprintf(env.Out, "  %-28s - %s\n", cmd.Usage(), desc)
			}
			fmt.Fprintln(env.Out, "  /type [current|archive]      - Show or switch the task type")
			fmt.Fprintln(env.Out, "  /quit                        - Leave the shell")

			return false, nil
		},
	})
}
