package internal

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1ABC, "JP 0xABC"},
		{0x2300, "CALL 0x300"},
		{0x3A12, "SE VA, 0x12"},
		{0x4B34, "SNE VB, 0x34"},
		{0x5120, "SE V1, V2"},
		{0x6005, "LD V0, 0x05"},
		{0x7003, "ADD V0, 0x03"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1"},
		{0x9340, "SNE V3, V4"},
		{0xA123, "LD I, 0x123"},
		{0xB210, "JP V0, 0x210"},
		{0xC50F, "RND V5, 0x0F"},
		{0xD125, "DRW V1, V2, 5"},
		{0xE49E, "SKP V4"},
		{0xE4A1, "SKNP V4"},
		{0xF607, "LD V6, DT"},
		{0xF60A, "LD V6, K"},
		{0xF615, "LD DT, V6"},
		{0xF618, "LD ST, V6"},
		{0xF61E, "ADD I, V6"},
		{0xF629, "LD F, V6"},
		{0xF633, "LD B, V6"},
		{0xF655, "LD [I], V6"},
		{0xF665, "LD V6, [I]"},
		{0x0123, "??? 0x0123"},
		{0x8128, "??? 0x8128"},
		{0xE0FF, "??? 0xE0FF"},
		{0xF000, "??? 0xF000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Disassemble(tt.opcode))
		})
	}
}

func TestDecodeCoversInstructionSet(t *testing.T) {
	known := 0
	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		if _, ok := decode(uint16(opcode)); ok {
			known++
		}
	}

	// The 0, E and F groups select on the low byte only, the 8 group on the
	// low nibble. The 12 remaining groups accept every operand value.
	want := 16*2 + 16*2 + 16*9 + 256*9 + 12*0x1000
	assert.Equal(t, want, known)
}

func TestDecodeIgnoresLowNibbleOfRegisterCompare(t *testing.T) {
	vm := newTestVM(t, 0x5017, 0x0000, 0x9027)
	vm.regV[0] = 1
	vm.regV[1] = 1
	cycle(t, vm, 1)
	assert.Equal(t, uint16(0x204), vm.PC())

	cycle(t, vm, 1)
	assert.Equal(t, uint16(0x208), vm.PC())
}

func TestDecodeOperands(t *testing.T) {
	o := decodeOperands(0xD7A3)
	assert.Equal(t, uint8(0x7), o.x)
	assert.Equal(t, uint8(0xA), o.y)
	assert.Equal(t, uint8(0x3), o.n)
	assert.Equal(t, uint8(0xA3), o.kk)
	assert.Equal(t, uint16(0x7A3), o.nnn)
}

// lookupOpcode finds an opcode in the chip8 instruction set by mask, the way a
// disassembler searches it.
func lookupOpcode(opcode uint16) *chip8.Instruction {
	for _, op := range chip8.Opcodes[opcode>>12] {
		if opcode&op.Info.Mask == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

func TestInstructionNamesMatchInstructionSet(t *testing.T) {
	for nibble, opcodes := range chip8.Opcodes {
		for _, op := range opcodes {
			ins, ok := decode(op.Info.Value)
			assert.True(t, ok, "opcode %04X of group %X not decoded", op.Info.Value, nibble)
			assert.Equal(t, op.Instruction.Name, ins.ins.Name)
		}
	}

	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		want := lookupOpcode(uint16(opcode))
		if want == nil {
			continue
		}
		ins, ok := decode(uint16(opcode))
		assert.True(t, ok, "opcode %04X not decoded", opcode)
		assert.Equal(t, want.Name, ins.ins.Name)
	}
}

func TestSkipInstructions(t *testing.T) {
	skips := []struct {
		opcode uint16 // canonical value in the instruction set
		taken  uint16 // variant whose condition holds on a fresh machine with V0 = 1
	}{
		{0x3000, 0x3001},
		{0x4000, 0x4000},
		{0x5000, 0x5000},
		{0x9000, 0x9010},
		{0xE09E, 0xE09E},
		{0xE0A1, 0xE1A1},
	}

	for _, skip := range skips {
		ins, ok := decode(skip.opcode)
		assert.True(t, ok)
		assert.True(t, chip8.SkipInstructions.Contains(ins.ins.Name), Disassemble(skip.opcode))

		vm := newTestVM(t, skip.taken)
		vm.regV[0] = 1
		vm.SetKey(1, true)
		cycle(t, vm, 1)
		assert.Equal(t, uint16(0x204), vm.PC(), Disassemble(skip.taken))
	}

	for _, opcode := range []uint16{0x00E0, 0x1000, 0x6000, 0x8004, 0xA000, 0xD000, 0xF00A} {
		ins, ok := decode(opcode)
		assert.True(t, ok)
		assert.False(t, chip8.SkipInstructions.Contains(ins.ins.Name), Disassemble(opcode))
	}
}
