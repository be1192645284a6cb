package cpu

import (
	"fmt"

	"github.com/Xander-Br/dmg-emulator/bit"
)

// opcodeFunc executes one primary or CB-prefixed instruction and returns
// its machine-cycle cost.
type opcodeFunc func(*CPU) int

func illegalOpcode(c *CPU) int {
	panic(fmt.Sprintf("cpu: illegal opcode 0x%02X at PC 0x%04X", c.currentOpcode, c.pc-1))
}

// NOP
// #0x00
func opcode0x00(_ *CPU) int {
	return 4
}

// LD BC, nn
// #0x01
func opcode0x01(c *CPU) int {
	c.setBC(c.readImmediateWord())
	return 12
}

// LD (BC), A
// #0x02
func opcode0x02(c *CPU) int {
	c.bus.Write(c.getBC(), c.a)
	return 8
}

// INC BC
// #0x03
func opcode0x03(c *CPU) int {
	c.setBC(c.getBC() + 1)
	return 8
}

// RLCA
// #0x07
func opcode0x07(c *CPU) int {
	c.rlc(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

// LD (nn), SP
// #0x08
func opcode0x08(c *CPU) int {
	address := c.readImmediateWord()
	c.bus.Write(address, bit.Low(c.sp))
	c.bus.Write(address+1, bit.High(c.sp))
	return 20
}

// ADD HL, BC
// #0x09
func opcode0x09(c *CPU) int {
	c.addToHL(c.getBC())
	return 8
}

// LD A, (BC)
// #0x0A
func opcode0x0A(c *CPU) int {
	c.a = c.bus.Read(c.getBC())
	return 8
}

// DEC BC
// #0x0B
func opcode0x0B(c *CPU) int {
	c.setBC(c.getBC() - 1)
	return 8
}

// RRCA
// #0x0F
func opcode0x0F(c *CPU) int {
	c.rrc(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

// STOP: halts CPU and LCD until a button is pressed. Not meaningfully
// emulatable without the real power-management hardware it targets, so this
// panics rather than silently misbehaving (spec.md section 4.9 "Misc").
// #0x10
func opcode0x10(c *CPU) int {
	c.readImmediate() // STOP is followed by a padding byte, per hardware
	panic("cpu: STOP is not supported")
}

// LD DE, nn
// #0x11
func opcode0x11(c *CPU) int {
	c.setDE(c.readImmediateWord())
	return 12
}

// LD (DE), A
// #0x12
func opcode0x12(c *CPU) int {
	c.bus.Write(c.getDE(), c.a)
	return 8
}

// INC DE
// #0x13
func opcode0x13(c *CPU) int {
	c.setDE(c.getDE() + 1)
	return 8
}

// RLA
// #0x17
func opcode0x17(c *CPU) int {
	c.rl(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

// JR i8
// #0x18
func opcode0x18(c *CPU) int {
	c.jumpRelative()
	return 12
}

// ADD HL, DE
// #0x19
func opcode0x19(c *CPU) int {
	c.addToHL(c.getDE())
	return 8
}

// LD A, (DE)
// #0x1A
func opcode0x1A(c *CPU) int {
	c.a = c.bus.Read(c.getDE())
	return 8
}

// DEC DE
// #0x1B
func opcode0x1B(c *CPU) int {
	c.setDE(c.getDE() - 1)
	return 8
}

// RRA
// #0x1F
func opcode0x1F(c *CPU) int {
	c.rr(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

// JR NZ, i8
// #0x20
func opcode0x20(c *CPU) int {
	if !c.isSetFlag(zeroFlag) {
		c.jumpRelative()
		return 12
	}
	c.readImmediate()
	return 8
}

// LD HL, nn
// #0x21
func opcode0x21(c *CPU) int {
	c.setHL(c.readImmediateWord())
	return 12
}

// LD (HL+), A
// #0x22
func opcode0x22(c *CPU) int {
	c.bus.Write(c.getHL(), c.a)
	c.setHL(c.getHL() + 1)
	return 8
}

// INC HL
// #0x23
func opcode0x23(c *CPU) int {
	c.setHL(c.getHL() + 1)
	return 8
}

// DAA
// #0x27
func opcode0x27(c *CPU) int {
	c.daa()
	return 4
}

// JR Z, i8
// #0x28
func opcode0x28(c *CPU) int {
	if c.isSetFlag(zeroFlag) {
		c.jumpRelative()
		return 12
	}
	c.readImmediate()
	return 8
}

// ADD HL, HL
// #0x29
func opcode0x29(c *CPU) int {
	c.addToHL(c.getHL())
	return 8
}

// LD A, (HL+)
// #0x2A
func opcode0x2A(c *CPU) int {
	c.a = c.bus.Read(c.getHL())
	c.setHL(c.getHL() + 1)
	return 8
}

// DEC HL
// #0x2B
func opcode0x2B(c *CPU) int {
	c.setHL(c.getHL() - 1)
	return 8
}

// CPL
// #0x2F
func opcode0x2F(c *CPU) int {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
	return 4
}

// JR NC, i8
// #0x30
func opcode0x30(c *CPU) int {
	if !c.isSetFlag(carryFlag) {
		c.jumpRelative()
		return 12
	}
	c.readImmediate()
	return 8
}

// LD SP, nn
// #0x31
func opcode0x31(c *CPU) int {
	c.sp = c.readImmediateWord()
	return 12
}

// LD (HL-), A
// #0x32
func opcode0x32(c *CPU) int {
	c.bus.Write(c.getHL(), c.a)
	c.setHL(c.getHL() - 1)
	return 8
}

// INC SP
// #0x33
func opcode0x33(c *CPU) int {
	c.sp++
	return 8
}

// SCF
// #0x37
func opcode0x37(c *CPU) int {
	c.setFlag(carryFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	return 4
}

// JR C, i8
// #0x38
func opcode0x38(c *CPU) int {
	if c.isSetFlag(carryFlag) {
		c.jumpRelative()
		return 12
	}
	c.readImmediate()
	return 8
}

// ADD HL, SP
// #0x39
func opcode0x39(c *CPU) int {
	c.addToHL(c.sp)
	return 8
}

// LD A, (HL-)
// #0x3A
func opcode0x3A(c *CPU) int {
	c.a = c.bus.Read(c.getHL())
	c.setHL(c.getHL() - 1)
	return 8
}

// DEC SP
// #0x3B
func opcode0x3B(c *CPU) int {
	c.sp--
	return 8
}

// CCF
// #0x3F
func opcode0x3F(c *CPU) int {
	c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	return 4
}

// HALT
// #0x76
func opcode0x76(c *CPU) int {
	c.halted = true
	return 4
}

// jumpRelative implements JR's offset read and PC adjustment, shared by the
// unconditional and conditional JR opcodes.
func (c *CPU) jumpRelative() {
	offset := int8(c.readImmediate())
	c.pc = uint16(int32(c.pc) + int32(offset))
}

// RET NZ
// #0xC0
func opcode0xC0(c *CPU) int {
	if !c.isSetFlag(zeroFlag) {
		c.pc = c.popStack()
		return 20
	}
	return 8
}

// JP NZ, nn
// #0xC2
func opcode0xC2(c *CPU) int {
	target := c.readImmediateWord()
	if !c.isSetFlag(zeroFlag) {
		c.pc = target
		return 16
	}
	return 12
}

// JP nn
// #0xC3
func opcode0xC3(c *CPU) int {
	c.pc = c.readImmediateWord()
	return 16
}

// CALL NZ, nn
// #0xC4
func opcode0xC4(c *CPU) int {
	target := c.readImmediateWord()
	if !c.isSetFlag(zeroFlag) {
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
	return 12
}

// ADD A, n
// #0xC6
func opcode0xC6(c *CPU) int {
	c.add(c.readImmediate())
	return 8
}

// RET Z
// #0xC8
func opcode0xC8(c *CPU) int {
	if c.isSetFlag(zeroFlag) {
		c.pc = c.popStack()
		return 20
	}
	return 8
}

// RET
// #0xC9
func opcode0xC9(c *CPU) int {
	c.pc = c.popStack()
	return 16
}

// JP Z, nn
// #0xCA
func opcode0xCA(c *CPU) int {
	target := c.readImmediateWord()
	if c.isSetFlag(zeroFlag) {
		c.pc = target
		return 16
	}
	return 12
}

// PREFIX CB: never invoked through the primary table, since Step()
// intercepts 0xCB before dispatch (spec.md section 4.9, step 3). Kept so
// the table has no nil entries.
// #0xCB
func opcode0xCB(_ *CPU) int {
	panic("cpu: 0xCB must be handled by Step before table dispatch")
}

// CALL Z, nn
// #0xCC
func opcode0xCC(c *CPU) int {
	target := c.readImmediateWord()
	if c.isSetFlag(zeroFlag) {
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
	return 12
}

// CALL nn
// #0xCD
func opcode0xCD(c *CPU) int {
	target := c.readImmediateWord()
	c.pushStack(c.pc)
	c.pc = target
	return 24
}

// ADC A, n
// #0xCE
func opcode0xCE(c *CPU) int {
	c.adc(c.readImmediate())
	return 8
}

// RET NC
// #0xD0
func opcode0xD0(c *CPU) int {
	if !c.isSetFlag(carryFlag) {
		c.pc = c.popStack()
		return 20
	}
	return 8
}

// JP NC, nn
// #0xD2
func opcode0xD2(c *CPU) int {
	target := c.readImmediateWord()
	if !c.isSetFlag(carryFlag) {
		c.pc = target
		return 16
	}
	return 12
}

// CALL NC, nn
// #0xD4
func opcode0xD4(c *CPU) int {
	target := c.readImmediateWord()
	if !c.isSetFlag(carryFlag) {
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
	return 12
}

// SUB n
// #0xD6
func opcode0xD6(c *CPU) int {
	c.sub(c.readImmediate())
	return 8
}

// RET C
// #0xD8
func opcode0xD8(c *CPU) int {
	if c.isSetFlag(carryFlag) {
		c.pc = c.popStack()
		return 20
	}
	return 8
}

// RETI
// #0xD9
func opcode0xD9(c *CPU) int {
	c.pc = c.popStack()
	c.ime = true
	return 16
}

// JP C, nn
// #0xDA
func opcode0xDA(c *CPU) int {
	target := c.readImmediateWord()
	if c.isSetFlag(carryFlag) {
		c.pc = target
		return 16
	}
	return 12
}

// CALL C, nn
// #0xDC
func opcode0xDC(c *CPU) int {
	target := c.readImmediateWord()
	if c.isSetFlag(carryFlag) {
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
	return 12
}

// SBC A, n
// #0xDE
func opcode0xDE(c *CPU) int {
	c.sbc(c.readImmediate())
	return 8
}

// LDH (n), A
// #0xE0
func opcode0xE0(c *CPU) int {
	offset := c.readImmediate()
	c.bus.Write(0xFF00|uint16(offset), c.a)
	return 12
}

// LD (C), A
// #0xE2
func opcode0xE2(c *CPU) int {
	c.bus.Write(0xFF00|uint16(c.c), c.a)
	return 8
}

// AND n
// #0xE6
func opcode0xE6(c *CPU) int {
	c.and(c.readImmediate())
	return 8
}

// ADD SP, i8
// #0xE8
func opcode0xE8(c *CPU) int {
	offset := int8(c.readImmediate())
	c.sp = c.addSPSigned(offset)
	return 16
}

// JP (HL)
// #0xE9
func opcode0xE9(c *CPU) int {
	c.pc = c.getHL()
	return 4
}

// LD (nn), A
// #0xEA
func opcode0xEA(c *CPU) int {
	c.bus.Write(c.readImmediateWord(), c.a)
	return 16
}

// XOR n
// #0xEE
func opcode0xEE(c *CPU) int {
	c.xor(c.readImmediate())
	return 8
}

// LDH A, (n)
// #0xF0
func opcode0xF0(c *CPU) int {
	offset := c.readImmediate()
	c.a = c.bus.Read(0xFF00 | uint16(offset))
	return 12
}

// LD A, (C)
// #0xF2
func opcode0xF2(c *CPU) int {
	c.a = c.bus.Read(0xFF00 | uint16(c.c))
	return 8
}

// DI
// #0xF3
func opcode0xF3(c *CPU) int {
	c.ime = false
	return 4
}

// OR n
// #0xF6
func opcode0xF6(c *CPU) int {
	c.or(c.readImmediate())
	return 8
}

// LD HL, SP+i8
// #0xF8
func opcode0xF8(c *CPU) int {
	offset := int8(c.readImmediate())
	c.setHL(c.addSPSigned(offset))
	return 12
}

// LD SP, HL
// #0xF9
func opcode0xF9(c *CPU) int {
	c.sp = c.getHL()
	return 8
}

// LD A, (nn)
// #0xFA
func opcode0xFA(c *CPU) int {
	c.a = c.bus.Read(c.readImmediateWord())
	return 16
}

// EI: per spec.md section 4.9's documented EI delay note, this
// implementation follows the reference behaviour and enables IME
// immediately rather than after the following instruction.
// #0xFB
func opcode0xFB(c *CPU) int {
	c.ime = true
	return 4
}

// CP n
// #0xFE
func opcode0xFE(c *CPU) int {
	c.cp(c.readImmediate())
	return 8
}
