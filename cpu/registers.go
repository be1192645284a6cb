package cpu

import "github.com/Xander-Br/dmg-emulator/bit"

// Flag is one of the 4 bits used in the flag register (upper nibble of F);
// the lower nibble of F is always zero (spec.md section 4.1).
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// Paired 16-bit register accessors. AF's low byte is always the flag
// register, so getAF/setAF route through f directly rather than storing a
// separate byte.

func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, c.f)
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}

// readReg8/writeReg8 resolve the 3-bit register field shared by the LD r,r',
// INC/DEC r, ALU A,r and CB-prefixed instruction families. The field order
// (B, C, D, E, H, L, (HL), A) is the LR35902's own encoding, which is why
// the primary and CB-prefixed tables can both be built by iterating over it
// in mapping.go, rather than written out opcode by opcode.
func (c *CPU) readReg8(index uint8) uint8 {
	switch index {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.bus.Read(c.getHL())
	default:
		return c.a
	}
}

func (c *CPU) writeReg8(index uint8, value uint8) {
	switch index {
	case 0:
		c.b = value
	case 1:
		c.c = value
	case 2:
		c.d = value
	case 3:
		c.e = value
	case 4:
		c.h = value
	case 5:
		c.l = value
	case 6:
		c.bus.Write(c.getHL(), value)
	default:
		c.a = value
	}
}

// modifyReg8 applies an in-place 8-bit operation (INC/DEC/the CB rotate and
// shift family) to the register the 3-bit field selects, routing the
// (HL) case through a read-modify-write on the bus since it has no
// directly addressable Go field.
func (c *CPU) modifyReg8(index uint8, op func(*uint8)) {
	if index == 6 {
		value := c.bus.Read(c.getHL())
		op(&value)
		c.bus.Write(c.getHL(), value)
		return
	}

	switch index {
	case 0:
		op(&c.b)
	case 1:
		op(&c.c)
	case 2:
		op(&c.d)
	case 3:
		op(&c.e)
	case 4:
		op(&c.h)
	case 5:
		op(&c.l)
	default:
		op(&c.a)
	}
}
