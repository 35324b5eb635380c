// Package rom reads CHIP-8 program images from disk.
package rom

import (
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chip8vm/internal"
)

// Image is a program image read from a file.
type Image struct {
	Name string
	Data []byte
}

// Truncated returns whether the image is larger than the program region
// and will lose its tail when loaded.
func (i Image) Truncated() bool {
	return len(i.Data) > internal.MaxProgramSize
}

// Load reads a program image file.
func Load(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return Read(path, file)
}

// Read reads a program image from a reader.
func Read(name string, r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, fmt.Errorf("reading program %s: %w", name, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("program %s is empty", name)
	}
	return Image{Name: name, Data: data}, nil
}
