// Package ebiten implements a windowed frontend on top of Ebiten.
package ebiten

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/internal/config"
	"github.com/mnafees/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

var (
	screenColor = [4]byte{0x00, 0x00, 0x00, 0xFF}
	spriteColor = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
)

// keymap maps the QWERTY block 1234/QWER/ASDF/ZXCV onto the hex keypad.
var keymap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Game implements ebiten.Game. Every tick runs one frame of the VM.
type Game struct {
	ctx    context.Context
	vm     *internal.C8VM
	runner *runner.Runner
	frame  []byte // RGBA copy of the framebuffer
}

// NewGame returns a game driving the given VM.
func NewGame(ctx context.Context, vm *internal.C8VM, opts config.Options, logger *log.Logger) *Game {
	g := &Game{
		ctx:   ctx,
		vm:    vm,
		frame: make([]byte, internal.ScreenWidth*internal.ScreenHeight*4),
	}
	g.runner = runner.New(vm, g, opts, logger)
	fillRGBA(g.frame, &internal.Framebuffer{})
	return g
}

// Run opens the window and blocks until the VM stops or the window is closed.
func Run(ctx context.Context, vm *internal.C8VM, opts config.Options, logger *log.Logger, title string) error {
	ebiten.SetWindowSize(internal.ScreenWidth*opts.Scale, internal.ScreenHeight*opts.Scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(ticksPerSecond(opts.FrameDelay))

	if err := ebiten.RunGame(NewGame(ctx, vm, opts, logger)); err != nil {
		return err
	}
	return ctx.Err()
}

func ticksPerSecond(delay time.Duration) int {
	if delay <= 0 {
		return ebiten.SyncWithFPS
	}
	tps := int(time.Second / delay)
	if tps < 1 {
		return 1
	}
	return tps
}

// Update polls the keyboard and runs one frame.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.PollInput(g.vm)
	if !g.vm.Running() {
		return ebiten.Termination
	}

	g.runner.Step(g.ctx)
	return g.Render(g.vm)
}

// Draw writes the last rendered frame to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.frame)
}

// Layout keeps the logical screen at the native resolution, Ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth, internal.ScreenHeight
}

// PollInput copies the keyboard state into the keypad.
func (g *Game) PollInput(vm *internal.C8VM) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		vm.Stop()
		return
	}
	for k, key := range keymap {
		vm.SetKey(key, ebiten.IsKeyPressed(k))
	}
}

// Render converts the framebuffer when it changed.
func (g *Game) Render(vm *internal.C8VM) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	pixels := vm.Pixels()
	fillRGBA(g.frame, &pixels)
	vm.UnsetDrawFlag()
	return nil
}

func fillRGBA(dst []byte, pixels *internal.Framebuffer) {
	for i, lit := range pixels {
		c := screenColor
		if lit {
			c = spriteColor
		}
		copy(dst[i*4:], c[:])
	}
}
