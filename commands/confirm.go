package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Confirmer asks a yes/no question.
type Confirmer func(prompt string) (bool, error)

// LineReader reads one line of input at a time. *readline.Instance
// satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Confirm keeps asking prompt on r until the answer is Y or N. End of
// input and interrupts count as N.
func Confirm(r LineReader, out io.Writer, prompt string) (bool, error) {
	r.SetPrompt("")
	for {
		fmt.Fprintln(out, prompt)
		line, err := r.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			fmt.Fprintln(out, "Invalid input. Please enter 'Y' or 'N'.")
		}
	}
}

// LineConfirmer returns a Confirmer that reads answers from r.
func LineConfirmer(r LineReader, out io.Writer) Confirmer {
	return func(prompt string) (bool, error) {
		return Confirm(r, out, prompt)
	}
}

// NewReadline opens a line editor on in and out.
func NewReadline(in io.ReadCloser, out io.Writer, prompt string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func (env *Env) confirm(prompt string) (bool, error) {
	if env.Confirm == nil {
		return false, nil
	}
	return env.Confirm(prompt)
}
