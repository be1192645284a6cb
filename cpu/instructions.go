package cpu

import "github.com/Xander-Br/dmg-emulator/bit"

// Stack helpers. PUSH writes the high byte at SP-1 and the low byte at
// SP-2, leaving memory[SP] = low, memory[SP+1] = high (spec.md section 4.9
// "Stack grows downward").
func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

func (c *CPU) readImmediate() uint8 {
	value := c.bus.Read(c.pc)
	c.pc++
	return value
}

func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bit.Combine(high, low)
}

// 8-bit INC/DEC.

func (c *CPU) inc(r *uint8) {
	old := *r
	*r = old + 1
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.setFlagToCondition(halfCarryFlag, old&0x0F == 0x0F)
	c.resetFlag(subFlag)
}

func (c *CPU) dec(r *uint8) {
	old := *r
	*r = old - 1
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.setFlagToCondition(halfCarryFlag, old&0x0F == 0x00)
	c.setFlag(subFlag)
}

// Rotates and shifts (CB-prefixed and the four accumulator-only variants).

func (c *CPU) rlc(r *uint8) {
	v := *r
	carry := v >> 7
	result := (v << 1) | carry
	*r = result
	c.setFlagToCondition(carryFlag, carry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) rl(r *uint8) {
	v := *r
	oldCarry := c.flagToBit(carryFlag)
	newCarry := v >> 7
	result := (v << 1) | oldCarry
	*r = result
	c.setFlagToCondition(carryFlag, newCarry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) rrc(r *uint8) {
	v := *r
	carry := v & 1
	result := (v >> 1) | (carry << 7)
	*r = result
	c.setFlagToCondition(carryFlag, carry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) rr(r *uint8) {
	v := *r
	oldCarry := c.flagToBit(carryFlag)
	newCarry := v & 1
	result := (v >> 1) | (oldCarry << 7)
	*r = result
	c.setFlagToCondition(carryFlag, newCarry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) sla(r *uint8) {
	v := *r
	carry := v >> 7
	result := v << 1
	*r = result
	c.setFlagToCondition(carryFlag, carry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) sra(r *uint8) {
	v := *r
	carry := v & 1
	result := (v >> 1) | (v & 0x80)
	*r = result
	c.setFlagToCondition(carryFlag, carry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) srl(r *uint8) {
	v := *r
	carry := v & 1
	result := v >> 1
	*r = result
	c.setFlagToCondition(carryFlag, carry == 1)
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) swap(r *uint8) {
	v := *r
	result := (v << 4) | (v >> 4)
	*r = result
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// bitTest implements CB BIT b,r: Z=!bit, N=0, H=1, C untouched.
func (c *CPU) bitTest(index uint8, value uint8) {
	c.setFlagToCondition(zeroFlag, !bit.IsSet(index, value))
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// 8-bit ALU against A.

func (c *CPU) add(value uint8) {
	result := uint16(c.a) + uint16(value)
	halfCarry := (c.a&0xF)+(value&0xF) > 0xF
	c.a = uint8(result)
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, result > 0xFF)
}

func (c *CPU) adc(value uint8) {
	carryIn := uint16(c.flagToBit(carryFlag))
	result := uint16(c.a) + uint16(value) + carryIn
	halfCarry := (c.a&0xF)+(value&0xF)+uint8(carryIn) > 0xF
	c.a = uint8(result)
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, result > 0xFF)
}

func (c *CPU) sub(value uint8) {
	halfCarry := (c.a & 0xF) < (value & 0xF)
	carry := c.a < value
	c.a = c.a - value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) sbc(value uint8) {
	carryIn := int(c.flagToBit(carryFlag))
	a := int(c.a)
	v := int(value)
	result := a - v - carryIn
	halfCarry := (a&0xF)-(v&0xF)-carryIn < 0
	c.a = uint8(result)
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, result < 0)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) cp(value uint8) {
	halfCarry := (c.a & 0xF) < (value & 0xF)
	carry := c.a < value
	result := c.a - value
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, carry)
}

// 16-bit ALU.

func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	result := uint32(hl) + uint32(value)
	halfCarry := (hl&0xFFF)+(value&0xFFF) > 0xFFF
	c.setHL(uint16(result))
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, result > 0xFFFF)
}

// addSPSigned implements the shared low-byte addition behind both
// ADD SP,i8 and LD HL,SP+i8 (spec.md section 4.9: "compute H and C from the
// low-byte addition, Z=N=0").
func (c *CPU) addSPSigned(offset int8) uint16 {
	sp := c.sp
	result := uint16(int32(sp) + int32(offset))

	lowSP := uint8(sp)
	offsetByte := uint8(offset)
	halfCarry := (lowSP&0xF)+(offsetByte&0xF) > 0xF
	carry := uint16(lowSP)+uint16(offsetByte) > 0xFF

	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

// daa adjusts A into packed BCD after an 8-bit add/subtract, following the
// standard correction table keyed off N/H/C (spec.md section 4.9).
func (c *CPU) daa() {
	a := c.a
	var adjust uint8
	carry := false

	if c.isSetFlag(halfCarryFlag) || (!c.isSetFlag(subFlag) && a&0xF > 0x9) {
		adjust |= 0x06
	}
	if c.isSetFlag(carryFlag) || (!c.isSetFlag(subFlag) && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.isSetFlag(subFlag) {
		a -= adjust
	} else {
		a += adjust
	}

	c.a = a
	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}
