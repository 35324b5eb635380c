package internal

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// operands are the nibble fields of an instruction word.
type operands struct {
	x   uint8  // the lower 4 bits of the high byte of the instruction
	y   uint8  // the upper 4 bits of the low byte of the instruction
	n   uint8  // the lowest 4 bits of the instruction
	kk  uint8  // the lowest 8 bits of the instruction
	nnn uint16 // the lowest 12 bits of the instruction
}

func decodeOperands(opcode uint16) operands {
	return operands{
		x:   uint8((opcode >> 8) & 0x000F),
		y:   uint8((opcode >> 4) & 0x000F),
		n:   uint8(opcode & 0x000F),
		kk:  uint8(opcode & 0x00FF),
		nnn: opcode & 0x0FFF,
	}
}

// instruction pairs a mnemonic from the chip8 instruction set with its handler.
type instruction struct {
	ins      *chip8.Instruction
	exec     func(vm *C8VM, o operands) error
	operands func(o operands) string // nil if the mnemonic takes no operands
}

// group resolves every opcode sharing the same high nibble.
type group func(opcode uint16) (instruction, bool)

// single maps a whole nibble group to one instruction.
func single(ins instruction) group {
	return func(uint16) (instruction, bool) {
		return ins, true
	}
}

// byLowByte selects within a group by the lowest 8 bits.
func byLowByte(table map[uint8]instruction) group {
	return func(opcode uint16) (instruction, bool) {
		ins, ok := table[uint8(opcode&0x00FF)]
		return ins, ok
	}
}

// byLowNibble selects within a group by the lowest 4 bits.
func byLowNibble(table map[uint8]instruction) group {
	return func(opcode uint16) (instruction, bool) {
		ins, ok := table[uint8(opcode&0x000F)]
		return ins, ok
	}
}

// Compare against the first 4 bits of the instruction only, the 0, 8, E and F
// groups carry a second level.
var groups = [16]group{
	0x0: byLowByte(map[uint8]instruction{
		0xE0: {chip8.ClsInst, (*C8VM).opCLS, nil},
		0xEE: {chip8.RetInst, (*C8VM).opRET, nil},
	}),
	0x1: single(instruction{chip8.JpInst, (*C8VM).opJP, address}),
	0x2: single(instruction{chip8.CallInst, (*C8VM).opCALL, address}),
	0x3: single(instruction{chip8.SeInst, (*C8VM).opSEVxKK, registerByte}),
	0x4: single(instruction{chip8.SneInst, (*C8VM).opSNEVxKK, registerByte}),
	0x5: single(instruction{chip8.SeInst, (*C8VM).opSEVxVy, registers}),
	0x6: single(instruction{chip8.LdInst, (*C8VM).opLDVxKK, registerByte}),
	0x7: single(instruction{chip8.AddInst, (*C8VM).opADDVxKK, registerByte}),
	0x8: byLowNibble(map[uint8]instruction{
		0x0: {chip8.LdInst, (*C8VM).opLDVxVy, registers},
		0x1: {chip8.OrInst, (*C8VM).opOR, registers},
		0x2: {chip8.AndInst, (*C8VM).opAND, registers},
		0x3: {chip8.XorInst, (*C8VM).opXOR, registers},
		0x4: {chip8.AddInst, (*C8VM).opADDVxVy, registers},
		0x5: {chip8.SubInst, (*C8VM).opSUB, registers},
		0x6: {chip8.ShrInst, (*C8VM).opSHR, register},
		0x7: {chip8.SubnInst, (*C8VM).opSUBN, registers},
		0xE: {chip8.ShlInst, (*C8VM).opSHL, register},
	}),
	0x9: single(instruction{chip8.SneInst, (*C8VM).opSNEVxVy, registers}),
	0xA: single(instruction{chip8.LdInst, (*C8VM).opLDI, literal("I, 0x%03X", nnnArg)}),
	0xB: single(instruction{chip8.JpInst, (*C8VM).opJPV0, literal("V0, 0x%03X", nnnArg)}),
	0xC: single(instruction{chip8.RndInst, (*C8VM).opRND, registerByte}),
	0xD: single(instruction{chip8.DrwInst, (*C8VM).opDRW, sprite}),
	0xE: byLowByte(map[uint8]instruction{
		0x9E: {chip8.SkpInst, (*C8VM).opSKP, register},
		0xA1: {chip8.SknpInst, (*C8VM).opSKNP, register},
	}),
	0xF: byLowByte(map[uint8]instruction{
		0x07: {chip8.LdInst, (*C8VM).opLDVxDT, literal("V%X, DT", xArg)},
		0x0A: {chip8.LdInst, (*C8VM).opLDVxK, literal("V%X, K", xArg)},
		0x15: {chip8.LdInst, (*C8VM).opLDDTVx, literal("DT, V%X", xArg)},
		0x18: {chip8.LdInst, (*C8VM).opLDSTVx, literal("ST, V%X", xArg)},
		0x1E: {chip8.AddInst, (*C8VM).opADDIVx, literal("I, V%X", xArg)},
		0x29: {chip8.LdInst, (*C8VM).opLDFVx, literal("F, V%X", xArg)},
		0x33: {chip8.LdInst, (*C8VM).opLDBVx, literal("B, V%X", xArg)},
		0x55: {chip8.LdInst, (*C8VM).opLDIVx, literal("[I], V%X", xArg)},
		0x65: {chip8.LdInst, (*C8VM).opLDVxI, literal("V%X, [I]", xArg)},
	}),
}

func decode(opcode uint16) (instruction, bool) {
	return groups[opcode>>12](opcode)
}

// Disassemble renders an instruction word in the mnemonic syntax of the
// technical reference, for example "LD V0, 0x05".
func Disassemble(opcode uint16) string {
	ins, ok := decode(opcode)
	if !ok {
		return fmt.Sprintf("??? 0x%04X", opcode)
	}
	name := strings.ToUpper(ins.ins.Name)
	if ins.operands == nil {
		return name
	}
	return name + " " + ins.operands(decodeOperands(opcode))
}

func address(o operands) string {
	return fmt.Sprintf("0x%03X", o.nnn)
}

func register(o operands) string {
	return fmt.Sprintf("V%X", o.x)
}

func registerByte(o operands) string {
	return fmt.Sprintf("V%X, 0x%02X", o.x, o.kk)
}

func registers(o operands) string {
	return fmt.Sprintf("V%X, V%X", o.x, o.y)
}

func sprite(o operands) string {
	return fmt.Sprintf("V%X, V%X, %d", o.x, o.y, o.n)
}

func xArg(o operands) any   { return o.x }
func nnnArg(o operands) any { return o.nnn }

func literal(layout string, arg func(operands) any) func(operands) string {
	return func(o operands) string {
		return fmt.Sprintf(layout, arg(o))
	}
}
