package main

import (
	"context"
	"errors"
	"os"

	"github.com/mnafees/chip8vm/internal/config"
	"github.com/mnafees/chip8vm/internal/runner"
	"github.com/mnafees/chip8vm/pkg/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// The frame is drawn on stdout, logs go to stderr and are best redirected
// to a file while the emulator runs.
func main() {
	opts, err := config.ParseFlags("chopper-term", os.Args[1:])
	logger := config.CreateLogger(os.Stderr, opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info("Chopper | CHIP-8 Emulator", log.String("version", buildinfo.Version(version, commit, date)))

	ctx := app.Context()
	err = run(ctx, opts, logger)

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
	case err != nil:
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts config.Options, logger *log.Logger) error {
	vm, err := runner.NewMachine(opts, logger)
	if err != nil {
		return err
	}

	io := term.NewIO(os.Stdin, os.Stdout)
	if err := io.Start(); err != nil {
		return err
	}
	defer func() {
		if err := io.Close(); err != nil {
			logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	return runner.New(vm, io, opts, logger).Run(ctx)
}
