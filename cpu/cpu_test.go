package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCPU_interruptVectorDispatch mirrors spec.md section 8 scenario 6:
// with IME=1, IE.vblank=1, IF.vblank=1, PC=0x1234, SP=0xFFFE, servicing the
// interrupt must push PC, jump to 0x40, clear IME and IF.vblank.
func TestCPU_interruptVectorDispatch(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.pc = 0x1234
	c.sp = 0xFFFE
	c.ime = true
	bus.ieReg = 0x01
	bus.ifReg = 0x01

	serviced := c.serviceInterrupt()

	require.True(t, serviced)
	assert.Equal(t, uint16(0x40), c.pc)
	assert.Equal(t, uint16(0xFFFC), c.sp)
	assert.Equal(t, uint8(0x34), bus.mem[0xFFFC])
	assert.Equal(t, uint8(0x12), bus.mem[0xFFFD])
	assert.False(t, c.ime)
	assert.Zero(t, bus.ifReg&0x01)
}

func TestCPU_interruptIgnoredWhenIMEFalse(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.pc = 0x1234
	c.ime = false
	bus.ieReg = 0x01
	bus.ifReg = 0x01
	bus.mem[0x1234] = 0x00

	c.Step()

	assert.Equal(t, uint16(0x1235), c.pc, "NOP executes, no vector dispatch")
	assert.NotZero(t, bus.ifReg&0x01, "the flag stays pending")
}

func TestCPU_haltIdlesWithoutPendingInterrupt(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.halted = true

	cycles := c.Step()

	assert.Equal(t, 4, cycles)
	assert.True(t, c.halted)
	assert.Equal(t, 4, bus.stepCycles)
}

func TestCPU_haltWakesOnPendingInterrupt(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.halted = true
	c.ime = false // wakes even with IME cleared
	bus.ieReg = 0x01
	bus.ifReg = 0x01
	c.pc = 0x1234
	bus.mem[0x1234] = 0x00

	c.Step()

	require.False(t, c.halted)
}

func TestCPU_priorityOrderServicesVBlankFirst(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.pc = 0x1234
	c.sp = 0xFFFE
	c.ime = true
	bus.ieReg = 0x1F
	bus.ifReg = 0x1F // every interrupt pending

	c.serviceInterrupt()

	assert.Equal(t, uint16(0x40), c.pc, "VBlank has the highest priority")
	assert.Equal(t, uint8(0x1E), bus.ifReg, "only VBlank's flag is cleared")
}
