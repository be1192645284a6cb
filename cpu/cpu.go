// Package cpu implements the Sharp LR35902 instruction decoder and
// executor: register file, flag semantics, the 256-entry primary and
// CB-prefixed dispatch tables, and interrupt servicing.
package cpu

import (
	"log/slog"

	"github.com/Xander-Br/dmg-emulator/addr"
)

// Bus is the CPU's view of the rest of the system: byte-addressable
// read/write, a way to advance the other components by a cycle count, and
// access to the interrupt mask registers. The root package's Bus type
// satisfies this structurally.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Step(cycles int)
	PendingInterrupt() bool
	InterruptFlags() uint8
	SetInterruptFlags(value uint8)
	InterruptEnable() uint8
}

// CPU holds the full LR35902 register file and execution state.
type CPU struct {
	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	ime    bool
	halted bool

	currentOpcode uint8

	bus Bus
}

// New returns a CPU wired to bus, in the post-boot-handoff power-on state
// (spec.md section 3: PC=0x0100, SP=0xFFFE, IME=true, halted=false).
func New(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		pc:  0x0100,
		sp:  0xFFFE,
		ime: true,
	}
}

// NewAtBootROM returns a CPU starting at 0x0000, for use when a boot ROM
// overlay is mapped (spec.md section 4.2 / Open Questions).
func NewAtBootROM(bus Bus) *CPU {
	c := New(bus)
	c.pc = 0x0000
	return c
}

// PC returns the program counter, mostly for tests and diagnostics.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// AF returns the accumulator and flag register packed as a 16-bit value
// (A in the high byte, F in the low byte), mostly for tests and diagnostics.
func (c *CPU) AF() uint16 { return c.getAF() }

// IME reports whether the interrupt master enable flag is set.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &^= uint8(flag)
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

// Step runs the fetch/decode/execute/interrupt-service loop once (spec.md
// section 4.9) and returns the number of machine cycles consumed.
func (c *CPU) Step() int {
	if c.halted {
		if !c.bus.PendingInterrupt() {
			c.bus.Step(4)
			return 4
		}
		c.halted = false
	}

	opcode := c.bus.Read(c.pc)
	c.pc++
	c.currentOpcode = opcode

	var cycles int
	if opcode == 0xCB {
		cbOpcode := c.bus.Read(c.pc)
		c.pc++
		cycles = cbTable[cbOpcode](c)
	} else {
		cycles = primaryTable[opcode](c)
	}

	c.bus.Step(cycles)

	if c.bus.PendingInterrupt() {
		c.halted = false
	}

	if c.ime {
		if serviced := c.serviceInterrupt(); serviced {
			cycles += 20
			c.bus.Step(12)
		}
	}

	return cycles
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt (spec.md section 4.9, step 7). It reports whether one was
// serviced.
func (c *CPU) serviceInterrupt() bool {
	pending := c.bus.InterruptFlags() & c.bus.InterruptEnable() & 0x1F
	if pending == 0 {
		return false
	}

	for _, iv := range addr.InterruptVectors {
		if pending&uint8(iv.Interrupt) == 0 {
			continue
		}

		c.bus.SetInterruptFlags(c.bus.InterruptFlags() &^ uint8(iv.Interrupt))
		c.ime = false
		c.pushStack(c.pc)
		c.pc = iv.Vector

		slog.Debug("cpu: servicing interrupt", "vector", iv.Vector)
		return true
	}

	return false
}
