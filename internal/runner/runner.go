// Package runner drives a VM frame by frame on behalf of a frontend.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/internal/config"
	"github.com/mnafees/chip8vm/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is the input/output layer of a VM.
type Frontend interface {
	// PollInput updates the keypad and stops the VM on a quit request.
	PollInput(vm *internal.C8VM)
	// Render draws the framebuffer.
	Render(vm *internal.C8VM) error
}

// NewMachine creates a VM seeded from the options and loads the program image into it.
func NewMachine(opts config.Options, logger *log.Logger) (*internal.C8VM, error) {
	img, err := rom.Load(opts.ROM)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	if img.Truncated() {
		logger.Warn("Program exceeds the program memory and was truncated",
			log.String("file", img.Name),
			log.Int("size", len(img.Data)),
			log.Int("max", internal.MaxProgramSize),
		)
	}

	vm := internal.NewC8VM(internal.WithRandomizer(opts.Random()))
	vm.LoadProgram(img.Data)
	logger.Info("Program loaded", log.String("file", img.Name), log.Int("size", len(img.Data)))
	return vm, nil
}

// Runner executes frames: poll input, run cycles, render, wait.
type Runner struct {
	vm             *internal.C8VM
	frontend       Frontend
	logger         *log.Logger
	cyclesPerFrame int
	frameDelay     time.Duration
}

// New returns a runner for the given VM and frontend.
func New(vm *internal.C8VM, frontend Frontend, opts config.Options, logger *log.Logger) *Runner {
	cycles := opts.CyclesPerFrame
	if cycles < 1 {
		cycles = 1
	}
	return &Runner{
		vm:             vm,
		frontend:       frontend,
		logger:         logger,
		cyclesPerFrame: cycles,
		frameDelay:     opts.FrameDelay,
	}
}

// Run loops until the VM is stopped, the context is cancelled or rendering fails.
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		r.logger.Debug("Machine state", log.Object("state", r.vm.State()))
	}()

	for r.vm.Running() {
		r.frontend.PollInput(r.vm)
		if !r.vm.Running() {
			break
		}

		r.Step(ctx)

		if err := r.frontend.Render(r.vm); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the cycles of one frame. Instructions that fail are logged
// and skipped.
func (r *Runner) Step(ctx context.Context) {
	trace := r.logger.Enabled(ctx, log.DebugLevel)

	for i := 0; i < r.cyclesPerFrame; i++ {
		if trace {
			opcode := r.vm.NextOpcode()
			r.logger.Debug("exec",
				log.Hex("pc", r.vm.PC()),
				log.Hex("opcode", opcode),
				log.String("instr", internal.Disassemble(opcode)),
			)
		}

		if err := r.vm.Cycle(); err != nil {
			r.logger.Warn("Instruction skipped", log.Err(err))
		}
	}
}

func (r *Runner) wait(ctx context.Context) error {
	if r.frameDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.frameDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
