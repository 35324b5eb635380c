package sdl

import (
	"fmt"

	"github.com/mnafees/chip8vm/internal"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x000000
	spriteColor = 0xFFFFFF
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window    *sdl.Window
	surface   *sdl.Surface
	pixelSize int32
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(pixelSize int) *IO {
	return &IO{
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		io.Destroy()
		return fmt.Errorf("clearing window surface: %w", err)
	}
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
		io.window = nil
	}
	sdl.Quit()
}

// PollInput drains the SDL event queue into the keypad. Escape and closing
// the window stop the VM.
func (io *IO) PollInput(vm *internal.C8VM) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			keycode := t.Keysym.Scancode
			if keycode == sdl.SCANCODE_ESCAPE {
				vm.Stop()
				continue
			}
			key, ok := keymap(keycode)
			if !ok {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				vm.SetKey(key, true)
			case sdl.KEYUP:
				vm.SetKey(key, false)
			}
		case *sdl.QuitEvent:
			vm.Stop()
		}
	}
}

// Render draws the current sprite configuration on screen if it changed
func (io *IO) Render(vm *internal.C8VM) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}

	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}
	pixels := vm.Pixels()
	for _, rect := range litRects(&pixels, io.pixelSize) {
		if err := io.surface.FillRect(&rect, spriteColor); err != nil {
			return fmt.Errorf("drawing pixel: %w", err)
		}
	}
	if err := io.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window surface: %w", err)
	}
	vm.UnsetDrawFlag()
	return nil
}

// litRects returns one square per lit pixel, scaled by pixelSize.
func litRects(pixels *internal.Framebuffer, pixelSize int32) []sdl.Rect {
	var rects []sdl.Rect
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if pixels.At(int(w), int(h)) {
				rects = append(rects, sdl.Rect{X: w * pixelSize, Y: h * pixelSize, W: pixelSize, H: pixelSize})
			}
		}
	}
	return rects
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) (uint8, bool) {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1, true
	case sdl.SCANCODE_2:
		return 0x2, true
	case sdl.SCANCODE_3:
		return 0x3, true
	case sdl.SCANCODE_4:
		return 0xC, true
	case sdl.SCANCODE_Q:
		return 0x4, true
	case sdl.SCANCODE_W:
		return 0x5, true
	case sdl.SCANCODE_E:
		return 0x6, true
	case sdl.SCANCODE_R:
		return 0xD, true
	case sdl.SCANCODE_A:
		return 0x7, true
	case sdl.SCANCODE_S:
		return 0x8, true
	case sdl.SCANCODE_D:
		return 0x9, true
	case sdl.SCANCODE_F:
		return 0xE, true
	case sdl.SCANCODE_Z:
		return 0xA, true
	case sdl.SCANCODE_X:
		return 0x0, true
	case sdl.SCANCODE_C:
		return 0xB, true
	case sdl.SCANCODE_V:
		return 0xF, true
	default:
		return 0, false
	}
}
