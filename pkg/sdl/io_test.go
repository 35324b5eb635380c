package sdl

import (
	"testing"

	"github.com/mnafees/chip8vm/internal"
	"github.com/retroenv/retrogolib/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeymap(t *testing.T) {
	layout := []struct {
		code sdl.Scancode
		key  uint8
	}{
		{sdl.SCANCODE_1, 0x1}, {sdl.SCANCODE_2, 0x2}, {sdl.SCANCODE_3, 0x3}, {sdl.SCANCODE_4, 0xC},
		{sdl.SCANCODE_Q, 0x4}, {sdl.SCANCODE_W, 0x5}, {sdl.SCANCODE_E, 0x6}, {sdl.SCANCODE_R, 0xD},
		{sdl.SCANCODE_A, 0x7}, {sdl.SCANCODE_S, 0x8}, {sdl.SCANCODE_D, 0x9}, {sdl.SCANCODE_F, 0xE},
		{sdl.SCANCODE_Z, 0xA}, {sdl.SCANCODE_X, 0x0}, {sdl.SCANCODE_C, 0xB}, {sdl.SCANCODE_V, 0xF},
	}

	seen := map[uint8]bool{}
	for _, l := range layout {
		key, ok := keymap(l.code)
		assert.True(t, ok)
		assert.Equal(t, l.key, key)
		seen[key] = true
	}
	assert.Equal(t, 16, len(seen))

	_, ok := keymap(sdl.SCANCODE_P)
	assert.False(t, ok)
}

func TestLitRects(t *testing.T) {
	// glyph 0 drawn at the origin lights 14 pixels
	vm := internal.NewC8VM()
	vm.LoadProgram([]byte{0xA0, 0x50, 0xD0, 0x05})
	assert.NoError(t, vm.Cycle())
	assert.NoError(t, vm.Cycle())

	pixels := vm.Pixels()
	rects := litRects(&pixels, 10)
	assert.Equal(t, 14, len(rects))
	assert.Equal(t, sdl.Rect{X: 0, Y: 0, W: 10, H: 10}, rects[0])
	assert.Equal(t, sdl.Rect{X: 30, Y: 40, W: 10, H: 10}, rects[len(rects)-1])
}
