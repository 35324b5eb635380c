package internal

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// OpcodeError reports an instruction that was skipped.
type OpcodeError struct {
	Opcode uint16
	Addr   uint16 // address the opcode was fetched from
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%v: %04X at 0x%03X", e.Err, e.Opcode, e.Addr)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}

func (vm *C8VM) opcodeError(err error) error {
	return &OpcodeError{
		Opcode: vm.opcode,
		Addr:   (vm.pc - instructionSize) & addrMask,
		Err:    err,
	}
}
