package commands

import (
	"context"
	"fmt"
)

func quit(ctx context.Context, env *Env, args []string) (bool, error) {
	fmt.Fprintln(env.Out, "Goodbye!")
	return true, nil
}

func init() {
	Register(&Command{
		Name:        "/quit",
		Description: "Leave the shell",
		Hidden:      true,
		Handler:     quit,
	})

	// Alias
	Register(&Command{
		Name:        "/exit",
		Description: "Leave the shell",
		Hidden:      true,
		Handler:     quit,
	})
}
