package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU_stackPushPopRoundTrips(t *testing.T) {
	c := New(newFakeBus())
	c.sp = 0xFFFE

	c.pushStack(0xBEEF)
	assert.Equal(t, uint16(0xFFFC), c.sp)
	assert.Equal(t, uint8(0xEF), c.bus.Read(0xFFFC), "low byte at the final SP")
	assert.Equal(t, uint8(0xBE), c.bus.Read(0xFFFD), "high byte at SP+1")

	got := c.popStack()
	assert.Equal(t, uint16(0xBEEF), got)
	assert.Equal(t, uint16(0xFFFE), c.sp, "SP is restored after a matching pop")
}

func TestCPU_stackNestedPushPop(t *testing.T) {
	c := New(newFakeBus())
	c.sp = 0xFFFE

	c.pushStack(0x1111)
	c.pushStack(0x2222)

	assert.Equal(t, uint16(0x2222), c.popStack())
	assert.Equal(t, uint16(0x1111), c.popStack())
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestCPU_addHalfCarryAndCarry(t *testing.T) {
	c := New(newFakeBus())

	c.a = 0x0F
	c.add(0x01)
	assert.Equal(t, uint8(0x10), c.a)
	assert.True(t, c.isSetFlag(halfCarryFlag))
	assert.False(t, c.isSetFlag(carryFlag))

	c.a = 0xFF
	c.add(0x01)
	assert.Equal(t, uint8(0x00), c.a)
	assert.True(t, c.isSetFlag(zeroFlag))
	assert.True(t, c.isSetFlag(carryFlag))
	assert.True(t, c.isSetFlag(halfCarryFlag))
}

func TestCPU_subHalfCarryAndCarry(t *testing.T) {
	c := New(newFakeBus())

	c.a = 0x10
	c.sub(0x01)
	assert.Equal(t, uint8(0x0F), c.a)
	assert.True(t, c.isSetFlag(halfCarryFlag), "borrow out of bit 4")
	assert.False(t, c.isSetFlag(carryFlag))

	c.a = 0x00
	c.sub(0x01)
	assert.Equal(t, uint8(0xFF), c.a)
	assert.True(t, c.isSetFlag(carryFlag))
}

func TestCPU_daaAfterAddition(t *testing.T) {
	c := New(newFakeBus())

	// 0x45 + 0x38 = 0x7D binary, which is not valid packed BCD for 45+38=83.
	c.a = 0x45
	c.add(0x38)
	c.daa()

	assert.Equal(t, uint8(0x83), c.a)
	assert.False(t, c.isSetFlag(carryFlag))
}

func TestCPU_daaAfterAdditionWithCarry(t *testing.T) {
	c := New(newFakeBus())

	// 99 + 1 = 100, which overflows a single BCD byte: result 0x00, carry set.
	c.a = 0x99
	c.add(0x01)
	c.daa()

	assert.Equal(t, uint8(0x00), c.a)
	assert.True(t, c.isSetFlag(zeroFlag))
	assert.True(t, c.isSetFlag(carryFlag))
}

func TestCPU_daaAfterSubtraction(t *testing.T) {
	c := New(newFakeBus())

	// 0x50 - 0x09 in BCD: binary subtraction first, then DAA corrects it.
	c.a = 0x50
	c.sub(0x09)
	c.daa()

	assert.Equal(t, uint8(0x41), c.a)
}

func TestCPU_bitTestLeavesCarryUntouched(t *testing.T) {
	c := New(newFakeBus())
	c.setFlag(carryFlag)

	c.bitTest(3, 0x08)
	assert.False(t, c.isSetFlag(zeroFlag))
	assert.True(t, c.isSetFlag(halfCarryFlag))
	assert.False(t, c.isSetFlag(subFlag))
	assert.True(t, c.isSetFlag(carryFlag), "BIT must not clear a carry set before it")

	c.bitTest(3, 0x00)
	assert.True(t, c.isSetFlag(zeroFlag))
}

func TestCPU_addToHLCarryFromBit15(t *testing.T) {
	c := New(newFakeBus())
	c.setHL(0xFFFF)

	c.addToHL(0x0001)

	assert.Equal(t, uint16(0x0000), c.getHL())
	assert.True(t, c.isSetFlag(carryFlag))
	assert.True(t, c.isSetFlag(halfCarryFlag))
}

func TestCPU_swapClearsAllButZero(t *testing.T) {
	c := New(newFakeBus())
	c.setFlag(carryFlag)
	c.setFlag(subFlag)

	v := uint8(0xAB)
	c.swap(&v)

	assert.Equal(t, uint8(0xBA), v)
	assert.False(t, c.isSetFlag(carryFlag))
	assert.False(t, c.isSetFlag(subFlag))
	assert.False(t, c.isSetFlag(zeroFlag))
}
