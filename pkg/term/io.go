// Package term implements a frontend that runs inside a terminal.
package term

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mnafees/chip8vm/internal"
	"golang.org/x/term"
)

// Terminals deliver no key release events. A key counts as held for this many
// frames after its last byte arrived, which covers the keyboard repeat delay.
const defaultHoldFrames = 12

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// IO renders the framebuffer with half block characters, two pixel rows per
// text line, and reads the keypad from raw stdin.
type IO struct {
	in  io.Reader
	out io.Writer

	fd       int
	oldState *term.State

	input      chan byte
	done       chan struct{} // closed by Close to release the reader
	closeOnce  sync.Once
	held       [16]int
	holdFrames int
	buf        bytes.Buffer
}

// NewIO returns a terminal frontend reading from in and drawing to out.
func NewIO(in io.Reader, out io.Writer) *IO {
	return &IO{
		in:         in,
		out:        out,
		input:      make(chan byte, 64),
		done:       make(chan struct{}),
		holdFrames: defaultHoldFrames,
	}
}

// Start switches the terminal into raw mode and starts reading key presses.
// Close must be called to restore the terminal.
func (t *IO) Start() error {
	f, ok := t.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("input is not a terminal")
	}
	t.fd = int(f.Fd())

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = oldState

	// clear the screen and hide the cursor
	if _, err := fmt.Fprint(t.out, "\x1b[2J\x1b[?25l"); err != nil {
		_ = t.Close()
		return fmt.Errorf("preparing terminal: %w", err)
	}

	go t.read()
	return nil
}

// read forwards input bytes until the reader fails or Close is called.
// It never touches the VM.
func (t *IO) read() {
	defer close(t.input)
	r := bufio.NewReader(t.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		select {
		case t.input <- b:
		case <-t.done:
			return
		}
	}
}

// Close stops forwarding input and restores the terminal state.
func (t *IO) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	if t.oldState == nil {
		return nil
	}
	_, _ = fmt.Fprint(t.out, "\x1b[?25h\r\n")
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	return err
}

// PollInput drains the pending key presses into the keypad. The VM is
// stopped once the input is exhausted.
func (t *IO) PollInput(vm *internal.C8VM) {
drain:
	for {
		select {
		case b, ok := <-t.input:
			if !ok {
				vm.Stop()
				break drain
			}
			t.press(vm, b)
		default:
			break drain
		}
	}
	t.tick(vm)
}

func (t *IO) press(vm *internal.C8VM, b byte) {
	switch b {
	case keyCtrlC, keyEscape:
		vm.Stop()
		return
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	if key, ok := keymap[b]; ok {
		t.held[key] = t.holdFrames
	}
}

// tick publishes the held keys and ages them by one frame.
func (t *IO) tick(vm *internal.C8VM) {
	for key := range t.held {
		vm.SetKey(uint8(key), t.held[key] > 0)
		if t.held[key] > 0 {
			t.held[key]--
		}
	}
}

// Render redraws the terminal if the framebuffer changed.
func (t *IO) Render(vm *internal.C8VM) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	pixels := vm.Pixels()
	if _, err := t.out.Write(t.frame(&pixels)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	vm.UnsetDrawFlag()
	return nil
}

// frame returns the escape sequence that draws the framebuffer from the top left corner.
func (t *IO) frame(pixels *internal.Framebuffer) []byte {
	t.buf.Reset()
	t.buf.WriteString("\x1b[H")
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := 0; x < internal.ScreenWidth; x++ {
			top, bottom := pixels.At(x, y), pixels.At(x, y+1)
			switch {
			case top && bottom:
				t.buf.WriteRune('█')
			case top:
				t.buf.WriteRune('▀')
			case bottom:
				t.buf.WriteRune('▄')
			default:
				t.buf.WriteByte(' ')
			}
		}
		t.buf.WriteString("\r\n")
	}
	return t.buf.Bytes()
}
