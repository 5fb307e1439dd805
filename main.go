package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"tasktimer/config"
	"tasktimer/errs"
	"tasktimer/logfields"
	"tasktimer/storage"
	"tasktimer/tracker"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errExit stops parsing after kong printed help or the version.
var errExit = errors.New("exit")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.ReadCloser, stdout, stderr io.Writer) (code int) {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("tasktimer"),
		kong.Description("Track the time spent on tasks from the command line."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version},
		kong.Exit(func(c int) {
			exitCode = c
			panic(errExit)
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errs.ExitGeneral
	}

	defer func() {
		if r := recover(); r != nil {
			if r != errExit {
				panic(r)
			}
			code = exitCode
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errs.ExitInvalidInput
	}

	global, err := setup(ctx, &cli, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errs.ExitCode(err)
	}

	if err := kctx.Run(global, &cli); err != nil {
		slog.Debug("Command failed", logfields.Command(kctx.Command()), logfields.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errs.ExitCode(err)
	}
	return errs.ExitOK
}

// setup resolves the configuration, installs the logger and opens both
// task stores.
func setup(ctx context.Context, cli *CLI, stdin io.ReadCloser, stdout, stderr io.Writer) (*Global, error) {
	cfg, err := config.Load(config.LoadOptions{Path: cli.Config})
	if err != nil {
		return nil, err
	}
	if err := cli.apply(cfg); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	opts := []storage.FileOption{
		storage.WithFormat(cfg.StoreFormat()),
		storage.WithLocking(cfg.Lock),
	}
	current := storage.NewFileStore(cfg.StorePath(storage.TaskTypeCurrent), opts...)
	archive := storage.NewFileStore(cfg.StorePath(storage.TaskTypeArchive), opts...)
	logger.Debug("Opened task stores",
		logfields.Path(current.Location()),
		logfields.Path(archive.Location()),
		logfields.Format(string(cfg.StoreFormat())))

	return &Global{
		Ctx:     ctx,
		Config:  cfg,
		Tracker: tracker.New(current, archive, tracker.WithLogger(logger)),
		In:      stdin,
		Out:     stdout,
	}, nil
}
