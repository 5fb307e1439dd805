package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"tasktimer/logfields"
)

// Prompt is shown before every shell command.
const Prompt = "> "

// Shell reads commands from r until /quit or end of input. Each command
// runs as its own transaction, so other processes see every change
// immediately. Errors are reported and the loop keeps going.
func Shell(ctx context.Context, env *Env, r LineReader) error {
	fmt.Fprintln(env.Out, "Welcome to tasktimer! Type /help for available commands.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.SetPrompt(Prompt)
		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if !strings.HasPrefix(input, "/") {
			input = "/" + input
		}

		slog.Debug("Running shell command", logfields.Command(input))
		quit, err := Execute(ctx, env, input)
		if err != nil {
			fmt.Fprintf(env.Out, "Error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}
