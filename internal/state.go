package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// State is a copy of the register file taken for diagnostics.
type State struct {
	PC         uint16
	I          uint16
	SP         uint8
	Opcode     uint16 // last fetched instruction
	DelayTimer uint8
	SoundTimer uint8
	V          [16]uint8
	Stack      [stackDepth]uint16
}

// State returns a snapshot of the registers, timers and stack.
func (vm *C8VM) State() State {
	return State{
		PC:         vm.pc,
		I:          vm.regI,
		SP:         vm.sp,
		Opcode:     vm.opcode,
		DelayTimer: vm.delayTimer,
		SoundTimer: vm.soundTimer,
		V:          vm.regV,
		Stack:      vm.stack,
	}
}

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC: %03X | I: %03X\n", s.PC, s.I)
	b.WriteString("Registers:")
	for i, v := range s.V {
		fmt.Fprintf(&b, " V%X: %02X", i, v)
	}
	return b.String()
}

// LogValue implements slog.LogValuer.
func (s State) LogValue() slog.Value {
	regs := make([]any, 0, len(s.V))
	for i, v := range s.V {
		regs = append(regs, log.Hex(fmt.Sprintf("v%x", i), v))
	}
	return slog.GroupValue(
		log.Hex("pc", s.PC),
		log.Hex("i", s.I),
		log.Uint8("sp", s.SP),
		log.Hex("opcode", s.Opcode),
		log.Uint8("dt", s.DelayTimer),
		log.Uint8("st", s.SoundTimer),
		slog.Group("v", regs...),
	)
}
