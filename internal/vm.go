package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"math/rand"
	"time"
)

// CHIP-8 VM constants
const (
	totalMemory      = 0x1000
	addrMask         = totalMemory - 1
	pcStartAddr      = 0x200
	fontsetStartAddr = 0x050
	glyphSize        = 5
	stackDepth       = 16
	instructionSize  = 2

	// MaxProgramSize is the number of bytes available to a program image.
	MaxProgramSize = totalMemory - pcStartAddr

	ScreenWidth  = 64
	ScreenHeight = 32
)

// Randomizer is the random source used by the RND instruction.
// *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Option configures a C8VM on construction.
type Option func(*C8VM)

// WithRandomizer replaces the time seeded random source.
func WithRandomizer(r Randomizer) Option {
	return func(vm *C8VM) {
		vm.rnd = r
	}
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackDepth]uint16 // A stack of 16 16-bit values
	memory     [totalMemory]uint8 // 4 KB global memory

	// A 16-bit integer to hold the current key values in the form of individual bits.
	// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
	key uint16

	pixels   Framebuffer // 64 px x 32 px display
	drawFlag bool        // Framebuffer changed since the last render
	running  bool        // Cleared by Stop to end the outer loop
	rnd      Randomizer  // Source for RND
}

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts ...Option) *C8VM {
	vm := &C8VM{
		pc:      pcStartAddr,
		running: true,
	}
	copy(vm.memory[fontsetStartAddr:], fontset)

	for _, opt := range opts {
		opt(vm)
	}
	if vm.rnd == nil {
		vm.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return vm
}

// LoadProgram copies a program image into memory at 0x200.
// Images larger than MaxProgramSize are truncated.
func (vm *C8VM) LoadProgram(data []byte) {
	copy(vm.memory[pcStartAddr:], data)
}

// Cycle fetches, decodes and executes one instruction, then ticks both timers.
// A returned error reports an instruction that could not be executed; it is
// never fatal and the machine can keep cycling.
func (vm *C8VM) Cycle() error {
	err := vm.step()

	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
	return err
}

func (vm *C8VM) step() error {
	vm.opcode = vm.fetch(vm.pc)
	vm.pc += instructionSize

	ins, ok := decode(vm.opcode)
	if !ok {
		return vm.opcodeError(ErrUnknownOpcode)
	}
	if err := ins.exec(vm, decodeOperands(vm.opcode)); err != nil {
		return vm.opcodeError(err)
	}
	return nil
}

// fetch reads a big-endian instruction word. Both bytes wrap around the 4 KB address space.
func (vm *C8VM) fetch(addr uint16) uint16 {
	return uint16(vm.read(addr))<<8 | uint16(vm.read(addr+1))
}

func (vm *C8VM) read(addr uint16) uint8 {
	return vm.memory[addr&addrMask]
}

// write stores a byte, dropping writes that would modify the built-in glyph set.
func (vm *C8VM) write(addr uint16, value uint8) {
	addr &= addrMask
	if addr >= fontsetStartAddr && addr < fontsetStartAddr+uint16(len(fontset)) {
		return
	}
	vm.memory[addr] = value
}

// Running returns whether the outer loop should keep cycling
func (vm *C8VM) Running() bool {
	return vm.running
}

// Stop requests termination of the outer loop after the current cycle
func (vm *C8VM) Stop() {
	vm.running = false
}

// SetKey sets or clears the respective bit in the key
func (vm *C8VM) SetKey(code uint8, pressed bool) {
	mask := uint16(1) << (code & 0xF)
	if pressed {
		vm.key |= mask
	} else {
		vm.key &^= mask
	}
}

// IsKeyPressed returns whether the given hex key is held down
func (vm *C8VM) IsKeyPressed(code uint8) bool {
	mask := uint16(1) << (code & 0xF)
	return vm.key&mask == mask
}

// Pixels returns a copy of the framebuffer
func (vm *C8VM) Pixels() Framebuffer {
	return vm.pixels
}

// IsDrawFlagSet returns whether the framebuffer changed since the last UnsetDrawFlag
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// PC returns the address of the next instruction to execute
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// NextOpcode returns the instruction word at the program counter without executing it
func (vm *C8VM) NextOpcode() uint16 {
	return vm.fetch(vm.pc)
}
