// Package config handles command line options and logger setup
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Options contains the settings shared by all frontends.
type Options struct {
	ROM            string        // program image to load
	Scale          int           // window pixels per CHIP-8 pixel
	FrameDelay     time.Duration // pause between frames
	CyclesPerFrame int           // instructions executed per frame
	Seed           int64         // random seed, 0 is time derived
	Debug          bool
	Quiet          bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	out := e.flags.Output()
	fmt.Fprintf(out, "usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Fprintln(out)
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	flags.Usage = func() {}

	var opts Options
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.DurationVar(&opts.FrameDelay, "delay", 16*time.Millisecond, "delay between frames")
	flags.IntVar(&opts.CyclesPerFrame, "cpf", 1, "cycles executed per frame")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed (default: time derived)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging and instruction trace")
	flags.BoolVar(&opts.Quiet, "q", false, "quiet mode")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags, msg: err.Error()}
		}
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("parsing flags: %v", err)}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "missing CHIP-8 program"}
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after the CHIP-8 program, options go before the program", rest[1]),
		}
	}
	opts.ROM = rest[0]

	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o Options) validate() error {
	if o.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", o.Scale)
	}
	if o.CyclesPerFrame < 1 {
		return fmt.Errorf("invalid cycles per frame %d, must be at least 1", o.CyclesPerFrame)
	}
	if o.FrameDelay < 0 {
		return fmt.Errorf("invalid frame delay %s", o.FrameDelay)
	}
	return nil
}

// Random returns the random source for the machine.
func (o Options) Random() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = w
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
