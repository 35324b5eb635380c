package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/mnafees/chip8vm/internal/config"
	"github.com/mnafees/chip8vm/internal/runner"
	"github.com/mnafees/chip8vm/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

const title = "Chopper | CHIP-8 Emulator"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// SDL calls have to be made from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags("chopper", os.Args[1:])
	logger := config.CreateLogger(os.Stderr, opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info(title, log.String("version", buildinfo.Version(version, commit, date)))

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

	io := sdl.NewIO(opts.Scale)
	if err := io.SetupWindow(title); err != nil {
		return err
	}
	defer io.Destroy()

	return runner.New(vm, io, opts, logger).Run(ctx)
}
