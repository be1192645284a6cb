package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapping_everyOpcodeIsAssigned verifies the 256-entry primary and
// CB-prefixed tables have no nil slots (spec.md section 4.9's coverage
// requirement), aside from the illegal opcodes, which are intentionally
// assigned a panicking handler rather than left nil.
func TestMapping_everyOpcodeIsAssigned(t *testing.T) {
	for i := 0; i < 256; i++ {
		assert.NotNil(t, primaryTable[i], "primary opcode 0x%02X", i)
		assert.NotNil(t, cbTable[i], "cb opcode 0x%02X", i)
	}
}

func TestMapping_ldRegisterToRegister(t *testing.T) {
	c := New(newFakeBus())
	c.b = 0x42

	// LD C, B is opcode 0x48 (dst=C=index 1, src=B=index 0).
	cycles := primaryTable[0x48](c)

	assert.Equal(t, uint8(0x42), c.c)
	assert.Equal(t, 4, cycles)
}

func TestMapping_ldRegisterToRegisterThroughHL(t *testing.T) {
	c := New(newFakeBus())
	c.setHL(0xC000)
	c.bus.Write(0xC000, 0x99)

	// LD A, (HL) is opcode 0x7E (dst=A=index 7, src=(HL)=index 6).
	cycles := primaryTable[0x7E](c)

	assert.Equal(t, uint8(0x99), c.a)
	assert.Equal(t, 8, cycles)
}

func TestMapping_haltIsNotOverwrittenByGeneration(t *testing.T) {
	c := New(newFakeBus())
	primaryTable[0x76](c)
	assert.True(t, c.halted)
}

func TestMapping_aluRegisterGroup(t *testing.T) {
	c := New(newFakeBus())
	c.a = 0x10
	c.b = 0x05

	// ADD A, B is opcode 0x80.
	primaryTable[0x80](c)
	assert.Equal(t, uint8(0x15), c.a)
}

func TestMapping_pushPopRoundTrip(t *testing.T) {
	c := New(newFakeBus())
	c.sp = 0xFFFE
	c.setBC(0xCAFE)

	primaryTable[0xC5](c) // PUSH BC
	c.setBC(0)
	primaryTable[0xC1](c) // POP BC

	assert.Equal(t, uint16(0xCAFE), c.getBC())
}

func TestMapping_popAFMasksLowNibble(t *testing.T) {
	c := New(newFakeBus())
	c.sp = 0xFFFE
	c.pushStack(0x12FF)

	primaryTable[0xF1](c) // POP AF

	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0xF0), c.f)
}

func TestMapping_rst(t *testing.T) {
	c := New(newFakeBus())
	c.sp = 0xFFFE
	c.pc = 0x1234

	// RST 0x18 is opcode 0xDF.
	primaryTable[0xDF](c)

	assert.Equal(t, uint16(0x0018), c.pc)
	assert.Equal(t, uint16(0x1234), c.popStack())
}

func TestMapping_cbRotateRegister(t *testing.T) {
	c := New(newFakeBus())
	c.b = 0x80

	// RLC B is CB opcode 0x00.
	cycles := cbTable[0x00](c)

	assert.Equal(t, uint8(0x01), c.b)
	assert.True(t, c.isSetFlag(carryFlag))
	assert.Equal(t, 8, cycles)
}

func TestMapping_cbBitIndirectHL(t *testing.T) {
	c := New(newFakeBus())
	c.setHL(0xC000)
	c.bus.Write(0xC000, 0x00)

	// BIT 0,(HL) is CB opcode 0x46.
	cycles := cbTable[0x46](c)

	require.True(t, c.isSetFlag(zeroFlag))
	assert.Equal(t, 12, cycles)
}

func TestMapping_cbSetAndRes(t *testing.T) {
	c := New(newFakeBus())
	c.a = 0x00

	// SET 7,A is CB opcode 0xFF.
	cbTable[0xFF](c)
	assert.Equal(t, uint8(0x80), c.a)

	// RES 7,A is CB opcode 0xBF.
	cbTable[0xBF](c)
	assert.Equal(t, uint8(0x00), c.a)
}
