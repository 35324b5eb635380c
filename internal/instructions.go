package internal

// Instruction handlers. The program counter already points past the current
// instruction when a handler runs, so skips add 2 and jumps overwrite it.

// CLS
func (vm *C8VM) opCLS(operands) error {
	vm.pixels.clear()
	vm.drawFlag = true
	return nil
}

// RET
func (vm *C8VM) opRET(operands) error {
	if vm.sp == 0 {
		return ErrStackUnderflow
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// JP nnn
func (vm *C8VM) opJP(o operands) error {
	vm.pc = o.nnn
	return nil
}

// CALL nnn
func (vm *C8VM) opCALL(o operands) error {
	if int(vm.sp) >= stackDepth {
		return ErrStackOverflow
	}
	vm.stack[vm.sp] = vm.pc
	vm.sp++
	vm.pc = o.nnn
	return nil
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += instructionSize
	}
}

// SE Vx, kk
func (vm *C8VM) opSEVxKK(o operands) error {
	vm.skipIf(vm.regV[o.x] == o.kk)
	return nil
}

// SNE Vx, kk
func (vm *C8VM) opSNEVxKK(o operands) error {
	vm.skipIf(vm.regV[o.x] != o.kk)
	return nil
}

// SE Vx, Vy
func (vm *C8VM) opSEVxVy(o operands) error {
	vm.skipIf(vm.regV[o.x] == vm.regV[o.y])
	return nil
}

// LD Vx, kk
func (vm *C8VM) opLDVxKK(o operands) error {
	vm.regV[o.x] = o.kk
	return nil
}

// ADD Vx, kk does not touch VF
func (vm *C8VM) opADDVxKK(o operands) error {
	vm.regV[o.x] += o.kk
	return nil
}

// LD Vx, Vy
func (vm *C8VM) opLDVxVy(o operands) error {
	vm.regV[o.x] = vm.regV[o.y]
	return nil
}

// OR Vx, Vy
func (vm *C8VM) opOR(o operands) error {
	vm.regV[o.x] |= vm.regV[o.y]
	return nil
}

// AND Vx, Vy
func (vm *C8VM) opAND(o operands) error {
	vm.regV[o.x] &= vm.regV[o.y]
	return nil
}

// XOR Vx, Vy
func (vm *C8VM) opXOR(o operands) error {
	vm.regV[o.x] ^= vm.regV[o.y]
	return nil
}

func flag(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

// The flag producing instructions below compute VF from the operands first
// and write it after Vx, so VF holds the flag even when x is F.

// ADD Vx, Vy
func (vm *C8VM) opADDVxVy(o operands) error {
	sum := uint16(vm.regV[o.x]) + uint16(vm.regV[o.y])
	vm.regV[o.x] = uint8(sum & 0x00FF)
	vm.regV[0xF] = flag(sum > 0xFF)
	return nil
}

// SUB Vx, Vy sets VF when there is no borrow
func (vm *C8VM) opSUB(o operands) error {
	vx, vy := vm.regV[o.x], vm.regV[o.y]
	vm.regV[o.x] = vx - vy
	vm.regV[0xF] = flag(vx >= vy)
	return nil
}

// SHR Vx
func (vm *C8VM) opSHR(o operands) error {
	vx := vm.regV[o.x]
	vm.regV[o.x] = vx >> 1
	vm.regV[0xF] = vx & 0x01
	return nil
}

// SUBN Vx, Vy
func (vm *C8VM) opSUBN(o operands) error {
	vx, vy := vm.regV[o.x], vm.regV[o.y]
	vm.regV[o.x] = vy - vx
	vm.regV[0xF] = flag(vy >= vx)
	return nil
}

// SHL Vx
func (vm *C8VM) opSHL(o operands) error {
	vx := vm.regV[o.x]
	vm.regV[o.x] = vx << 1
	vm.regV[0xF] = (vx >> 7) & 0x01
	return nil
}

// SNE Vx, Vy
func (vm *C8VM) opSNEVxVy(o operands) error {
	vm.skipIf(vm.regV[o.x] != vm.regV[o.y])
	return nil
}

// LD I, nnn
func (vm *C8VM) opLDI(o operands) error {
	vm.regI = o.nnn
	return nil
}

// JP V0, nnn
func (vm *C8VM) opJPV0(o operands) error {
	vm.pc = o.nnn + uint16(vm.regV[0])
	return nil
}

// RND Vx, kk
func (vm *C8VM) opRND(o operands) error {
	vm.regV[o.x] = uint8(vm.rnd.Intn(256)) & o.kk
	return nil
}

// DRW Vx, Vy, n XORs an n byte sprite from memory at I onto the screen.
// Pixels past the right or bottom edge wrap to the opposite side.
func (vm *C8VM) opDRW(o operands) error {
	x := int(vm.regV[o.x] % ScreenWidth)
	y := int(vm.regV[o.y] % ScreenHeight)

	vm.regV[0xF] = 0
	for row := 0; row < int(o.n); row++ {
		spriteByte := vm.read(vm.regI + uint16(row))
		for col := 0; col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			if vm.pixels.toggle(x+col, y+row) {
				vm.regV[0xF] = 1
			}
		}
	}
	vm.drawFlag = true
	return nil
}

// SKP Vx
func (vm *C8VM) opSKP(o operands) error {
	vm.skipIf(vm.IsKeyPressed(vm.regV[o.x]))
	return nil
}

// SKNP Vx
func (vm *C8VM) opSKNP(o operands) error {
	vm.skipIf(!vm.IsKeyPressed(vm.regV[o.x]))
	return nil
}

// LD Vx, DT
func (vm *C8VM) opLDVxDT(o operands) error {
	vm.regV[o.x] = vm.delayTimer
	return nil
}

// LD Vx, K polls the keypad once. With no key down the program counter is
// rewound so the same instruction runs again on the next cycle.
func (vm *C8VM) opLDVxK(o operands) error {
	for key := uint8(0x0); key <= 0xF; key++ {
		if vm.IsKeyPressed(key) {
			vm.regV[o.x] = key
			return nil
		}
	}
	vm.pc -= instructionSize
	return nil
}

// LD DT, Vx
func (vm *C8VM) opLDDTVx(o operands) error {
	vm.delayTimer = vm.regV[o.x]
	return nil
}

// LD ST, Vx
func (vm *C8VM) opLDSTVx(o operands) error {
	vm.soundTimer = vm.regV[o.x]
	return nil
}

// ADD I, Vx
func (vm *C8VM) opADDIVx(o operands) error {
	vm.regI += uint16(vm.regV[o.x])
	return nil
}

// LD F, Vx
func (vm *C8VM) opLDFVx(o operands) error {
	vm.regI = fontsetStartAddr + uint16(vm.regV[o.x]&0xF)*glyphSize
	return nil
}

// LD B, Vx
func (vm *C8VM) opLDBVx(o operands) error {
	value := vm.regV[o.x]
	vm.write(vm.regI, value/100)
	vm.write(vm.regI+1, (value/10)%10)
	vm.write(vm.regI+2, value%10)
	return nil
}

// LD [I], Vx
func (vm *C8VM) opLDIVx(o operands) error {
	for i := uint16(0); i <= uint16(o.x); i++ {
		vm.write(vm.regI+i, vm.regV[i])
	}
	return nil
}

// LD Vx, [I]
func (vm *C8VM) opLDVxI(o operands) error {
	for i := uint16(0); i <= uint16(o.x); i++ {
		vm.regV[i] = vm.read(vm.regI + i)
	}
	return nil
}
