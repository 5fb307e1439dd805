package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"tasktimer/errs"
	"tasktimer/storage"
	"tasktimer/tracker"
)

// ParamType defines the type of a command parameter
type ParamType string

const (
	ParamTypeString   ParamType = "string"
	ParamTypeID       ParamType = "id"
	ParamTypeDuration ParamType = "duration"
)

// Param defines a parameter for a command
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Rest        bool // consumes all remaining words
}

// Env is what a command runs against: the tracker, the selected task
// type and where to write user-facing output.
type Env struct {
	Tracker  *tracker.Tracker
	TaskType storage.TaskType
	Out      io.Writer
	// Confirm asks the user a yes/no question. Nil means every
	// destructive command is declined.
	Confirm Confirmer
}

// Command represents a shell command
type Command struct {
	Name        string
	Description string
	Handler     func(ctx context.Context, env *Env, args []string) (quit bool, err error)
	Params      []Param
	Hidden      bool // if true, exclude from help
	Destructive bool // if true, asks for confirmation
}

// Usage renders the command with its parameters, e.g. "/add <task_id> <time>".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, p := range c.Params {
		name := p.Name
		if p.Rest {
			name += "..."
		}
		if p.Required {
			fmt.Fprintf(&b, " <%s>", name)
		} else {
			fmt.Fprintf(&b, " [%s]", name)
		}
	}
	return b.String()
}

var registry = make(map[string]*Command)

// Register adds a command to the registry
func Register(cmd *Command) {
	registry[strings.ToLower(cmd.Name)] = cmd
}

// Execute runs a command line such as "/add 1 30m".
func Execute(ctx context.Context, env *Env, input string) (bool, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false, errs.New(errs.KindInvalidInput, "empty command")
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, exists := registry[cmdName]
	if !exists {
		return false, errs.New(errs.KindInvalidInput, "unknown command: %s", cmdName)
	}
	if err := cmd.checkArgs(args); err != nil {
		return false, err
	}

	return cmd.Handler(ctx, env, args)
}

func (c *Command) checkArgs(args []string) error {
	required := 0
	for _, p := range c.Params {
		if p.Required {
			required++
		}
	}
	if len(args) < required {
		return usageError(c.Name)
	}
	return nil
}

func usageError(name string) error {
	if cmd := GetByName(name); cmd != nil {
		return errs.New(errs.KindInvalidInput, "usage: %s", cmd.Usage())
	}
	return errs.New(errs.KindInvalidInput, "unknown command: %s", name)
}

// List returns all registered commands sorted by name
func List() []*Command {
	cmds := make([]*Command, 0, len(registry))
	for _, cmd := range registry {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// GetByName returns a command by name (with or without leading /)
func GetByName(name string) *Command {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return registry[strings.ToLower(name)]
}

// ParseID parses a task id argument.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.New(errs.KindInvalidInput, "could not parse the id %q", s)
	}
	if err := ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateID rejects ids that can never name a task. Ids start at 1.
func ValidateID(id int) error {
	if id < 1 {
		return errs.New(errs.KindInvalidInput, "task id must be a positive integer, got %d", id)
	}
	return nil
}
