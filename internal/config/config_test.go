package config

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: Options{ROM: "pong.ch8", Scale: 10, FrameDelay: 16 * time.Millisecond, CyclesPerFrame: 1},
		},
		{
			name: "all flags",
			args: []string{"-scale", "20", "-delay", "2ms", "-cpf", "8", "-seed", "42", "-debug", "-q", "maze.ch8"},
			want: Options{
				ROM: "maze.ch8", Scale: 20, FrameDelay: 2 * time.Millisecond, CyclesPerFrame: 8,
				Seed: 42, Debug: true, Quiet: true,
			},
		},
		{
			name: "no delay",
			args: []string{"-delay", "0s", "maze.ch8"},
			want: Options{ROM: "maze.ch8", Scale: 10, CyclesPerFrame: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags("chip8", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing program", nil},
		{"options after program", []string{"pong.ch8", "-debug"}},
		{"unknown flag", []string{"-turbo", "pong.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags("chip8", tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlagsInvalidValues(t *testing.T) {
	for _, args := range [][]string{
		{"-scale", "0", "pong.ch8"},
		{"-cpf", "-1", "pong.ch8"},
		{"-delay", "-5ms", "pong.ch8"},
	} {
		_, err := ParseFlags("chip8", args)
		var usageErr *UsageError
		assert.True(t, err != nil)
		assert.False(t, errors.As(err, &usageErr))
	}
}

func TestRandomSeed(t *testing.T) {
	a := Options{Seed: 7}.Random()
	b := Options{Seed: 7}.Random()
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Intn(256), b.Intn(256))
	}
}

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name         string
		debug, quiet bool
		want         log.Level
	}{
		{"default", false, false, log.InfoLevel},
		{"debug", true, false, log.DebugLevel},
		{"quiet", false, true, log.ErrorLevel},
		{"debug wins", true, true, log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := CreateLogger(&buf, tt.debug, tt.quiet)
			ctx := context.Background()

			assert.Equal(t, tt.want, logger.Level())
			assert.True(t, logger.Enabled(ctx, tt.want))
			assert.False(t, logger.Enabled(ctx, tt.want-1))
		})
	}
}

func TestCreateLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := CreateLogger(&buf, false, false)

	logger.Debug("hidden")
	logger.Info("Program loaded", log.String("file", "pong.ch8"))

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "Program loaded"))
	assert.True(t, strings.Contains(out, `"file":"pong.ch8"`))
}
