package internal

// Framebuffer holds the 64 x 32 monochrome display, row-major.
type Framebuffer [ScreenWidth * ScreenHeight]bool

// At returns whether the pixel at column x, row y is lit.
// Coordinates wrap around the screen edges.
func (f *Framebuffer) At(x, y int) bool {
	return f[offset(x, y)]
}

// toggle flips a pixel and returns true if it was lit before.
func (f *Framebuffer) toggle(x, y int) bool {
	i := offset(x, y)
	was := f[i]
	f[i] = !was
	return was
}

func (f *Framebuffer) clear() {
	*f = Framebuffer{}
}

func offset(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return y*ScreenWidth + x
}
