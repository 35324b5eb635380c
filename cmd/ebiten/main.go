package main

import (
	"context"
	"errors"
	"os"

	"github.com/mnafees/chip8vm/internal/config"
	"github.com/mnafees/chip8vm/internal/runner"
	"github.com/mnafees/chip8vm/pkg/ebiten"
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

func main() {
	opts, err := config.ParseFlags("chopper-ebiten", os.Args[1:])
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

	vm, err := runner.NewMachine(opts, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}

	ctx := app.Context()
	err = ebiten.Run(ctx, vm, opts, logger, title)
	logger.Debug("Machine state", log.Object("state", vm.State()))

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
	case err != nil:
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}
