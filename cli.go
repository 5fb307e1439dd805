package main

import (
	"context"
	"io"

	"github.com/alecthomas/kong"

	"tasktimer/commands"
	"tasktimer/config"
	"tasktimer/storage"
	"tasktimer/tracker"
)

// Global is the state shared by every subcommand once flags are parsed.
type Global struct {
	Ctx     context.Context
	Config  *config.Config
	Tracker *tracker.Tracker
	In      io.ReadCloser
	Out     io.Writer
}

// env builds the command environment for the selected task type.
func (g *Global) env(cli *CLI) *commands.Env {
	env := &commands.Env{
		Tracker:  g.Tracker,
		TaskType: storage.TaskType(cli.TaskType),
		Out:      g.Out,
	}
	env.Confirm = func(prompt string) (bool, error) {
		rl, err := commands.NewReadline(g.In, g.Out, "")
		if err != nil {
			return false, err
		}
		defer func() { _ = rl.Close() }()
		return commands.Confirm(rl, g.Out, prompt)
	}
	return env
}

// CLI definition & global flags.
type CLI struct {
	TaskType string           `short:"t" name:"tasktype" help:"Task type to operate on (${enum})" enum:"current,archive" default:"current"`
	Config   string           `short:"c" help:"Configuration file path" type:"path"`
	DataDir  string           `name:"data-dir" help:"Directory holding the task files" type:"path"`
	Format   string           `help:"Storage format of the task files (json, yaml, toml)"`
	NoLock   bool             `name:"no-lock" help:"Do not lock the task files"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	List    ListCmd    `cmd:"" help:"List running tasks, or all of them with -a"`
	Create  CreateCmd  `cmd:"" help:"Create a new task"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a task"`
	Delname DelnameCmd `cmd:"" help:"Delete the first task with the given name"`
	Start   StartCmd   `cmd:"" help:"Start running a task timer"`
	Stop    StopCmd    `cmd:"" help:"Stop running a task timer"`
	Cancel  CancelCmd  `cmd:"" help:"Stop a task timer without counting the time since it started"`
	Rename  RenameCmd  `cmd:"" help:"Rename a task"`
	Add     AddCmd     `cmd:"" help:"Add time to a task, e.g. 1h30m"`
	Sub     SubCmd     `cmd:"" help:"Subtract time from a task"`
	Set     SetCmd     `cmd:"" help:"Set the time of a task"`
	Archive ArchiveCmd `cmd:"" help:"Move a current task into the archive"`
	Clear   ClearCmd   `cmd:"" help:"Delete every task of the selected type"`
	Shell   ShellCmd   `cmd:"" help:"Run commands interactively"`
}

// apply layers the flags over the loaded configuration.
func (c *CLI) apply(cfg *config.Config) error {
	if c.DataDir != "" {
		cfg.DataDir = c.DataDir
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.NoLock {
		cfg.Lock = false
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg.Validate()
}

// taskID is a positional task id.
type taskID int

func (id taskID) Validate() error {
	return commands.ValidateID(int(id))
}

type ListCmd struct {
	All     bool `short:"a" help:"List all tasks, not only running ones"`
	LastRun bool `short:"l" name:"last-run" help:"Show when each task last ran"`
}

func (l *ListCmd) Run(g *Global, cli *CLI) error {
	return commands.ListTasks(g.Ctx, g.env(cli), l.All, l.LastRun)
}

type CreateCmd struct {
	Name  string `arg:"" help:"Task name"`
	Start bool   `short:"s" help:"Start the timer right away"`
}

func (c *CreateCmd) Run(g *Global, cli *CLI) error {
	return commands.Create(g.Ctx, g.env(cli), c.Name, c.Start)
}

type DeleteCmd struct {
	ID taskID `arg:"" name:"task_id" help:"Task id"`
}

func (d *DeleteCmd) Run(g *Global, cli *CLI) error {
	return commands.Delete(g.Ctx, g.env(cli), int(d.ID))
}

type DelnameCmd struct {
	Name string `arg:"" help:"Task name"`
}

func (d *DelnameCmd) Run(g *Global, cli *CLI) error {
	return commands.DeleteByName(g.Ctx, g.env(cli), d.Name)
}

type StartCmd struct {
	ID taskID `arg:"" name:"task_id" help:"Task id"`
}

func (s *StartCmd) Run(g *Global, cli *CLI) error {
	return commands.Start(g.Ctx, g.env(cli), int(s.ID))
}

type StopCmd struct {
	ID taskID `arg:"" name:"task_id" help:"Task id"`
}

func (s *StopCmd) Run(g *Global, cli *CLI) error {
	return commands.Stop(g.Ctx, g.env(cli), int(s.ID))
}

type CancelCmd struct {
	ID taskID `arg:"" name:"task_id" help:"Task id"`
}

func (c *CancelCmd) Run(g *Global, cli *CLI) error {
	return commands.Cancel(g.Ctx, g.env(cli), int(c.ID))
}

type RenameCmd struct {
	ID   taskID `arg:"" name:"task_id" help:"Task id"`
	Name string `arg:"" help:"New task name"`
}

func (r *RenameCmd) Run(g *Global, cli *CLI) error {
	return commands.Rename(g.Ctx, g.env(cli), int(r.ID), r.Name)
}

type AddCmd struct {
	ID   taskID `arg:"" name:"task_id" help:"Task id"`
	Time string `arg:"" help:"Duration such as 1d2h30m15s"`
}

func (a *AddCmd) Run(g *Global, cli *CLI) error {
	return commands.Add(g.Ctx, g.env(cli), int(a.ID), a.Time)
}

type SubCmd struct {
	ID   taskID `arg:"" name:"task_id" help:"Task id"`
	Time string `arg:"" help:"Duration such as 1d2h30m15s"`
}

func (s *SubCmd) Run(g *Global, cli *CLI) error {
	return commands.Sub(g.Ctx, g.env(cli), int(s.ID), s.Time)
}

type SetCmd struct {
	ID   taskID `arg:"" name:"task_id" help:"Task id"`
	Time string `arg:"" help:"Duration such as 1d2h30m15s"`
}

func (s *SetCmd) Run(g *Global, cli *CLI) error {
	return commands.Set(g.Ctx, g.env(cli), int(s.ID), s.Time)
}

type ArchiveCmd struct {
	ID taskID `arg:"" name:"task_id" help:"Task id"`
}

func (a *ArchiveCmd) Run(g *Global, cli *CLI) error {
	return commands.Archive(g.Ctx, g.env(cli), int(a.ID))
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (c *ClearCmd) Run(g *Global, cli *CLI) error {
	return commands.Clear(g.Ctx, g.env(cli), c.Yes)
}

type ShellCmd struct{}

func (s *ShellCmd) Run(g *Global, cli *CLI) error {
	rl, err := commands.NewReadline(g.In, g.Out, commands.Prompt)
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	env := g.env(cli)
	env.Confirm = commands.LineConfirmer(rl, g.Out)
	return commands.Shell(g.Ctx, env, rl)
}
