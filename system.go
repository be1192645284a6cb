// Package dmgemulator wires the CPU, Bus and peripherals into a runnable
// system: load a ROM, advance it by instructions or whole frames, and read
// back the framebuffer and joypad (spec.md section 2's data flow, section 6
// for what the host layer is expected to drive).
package dmgemulator

import (
	"fmt"
	"os"

	"github.com/Xander-Br/dmg-emulator/cpu"
	"github.com/Xander-Br/dmg-emulator/memory"
	"github.com/Xander-Br/dmg-emulator/video"
)

// cyclesPerFrame is the machine-cycle budget of one 160x144 frame at the
// console's native ~59.7 Hz refresh (154 scanlines * 456 cycles).
const cyclesPerFrame = 154 * 456

// System is the root struct tying the CPU to the Bus it executes against.
type System struct {
	cpu *cpu.CPU
	bus *Bus

	instructionCount uint64
	frameCount       uint64
}

// New returns a System with no cartridge loaded, the boot ROM skipped
// (PC=0x0100 per spec.md section 3's documented choice, see DESIGN.md).
func New() *System {
	return newSystem(memory.NewBlankCartridge())
}

// NewWithROM loads the ROM at path and returns a ready-to-run System.
func NewWithROM(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmgemulator: reading rom: %w", err)
	}

	cart, err := memory.NewCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("dmgemulator: loading rom: %w", err)
	}

	return newSystem(cart), nil
}

func newSystem(cart *memory.Cartridge) *System {
	bus := NewBus(cart)
	return &System{
		cpu: cpu.New(bus),
		bus: bus,
	}
}

// NewWithBootROM loads a cartridge and a boot ROM overlay (spec.md section
// 3's "PC=0x0000, boot ROM mapped" alternative). The CPU starts at 0x0000
// and executes through the boot ROM until software writes to 0xFF50.
func NewWithBootROM(romPath, bootROMPath string) (*System, error) {
	romData, err := os.ReadFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("dmgemulator: reading rom: %w", err)
	}
	cart, err := memory.NewCartridge(romData)
	if err != nil {
		return nil, fmt.Errorf("dmgemulator: loading rom: %w", err)
	}

	bootData, err := os.ReadFile(bootROMPath)
	if err != nil {
		return nil, fmt.Errorf("dmgemulator: reading boot rom: %w", err)
	}
	if err := cart.SetBootROM(bootData); err != nil {
		return nil, fmt.Errorf("dmgemulator: loading boot rom: %w", err)
	}

	bus := NewBus(cart)
	return &System{
		cpu: cpu.NewAtBootROM(bus),
		bus: bus,
	}, nil
}

// Step executes a single CPU instruction (including any interrupt service
// triggered afterwards) and returns the machine cycles it consumed.
func (s *System) Step() int {
	cycles := s.cpu.Step()
	s.instructionCount++
	return cycles
}

// RunFrame executes instructions until at least one full frame's worth of
// cycles has elapsed, returning the cycle count actually consumed.
func (s *System) RunFrame() int {
	total := 0
	for total < cyclesPerFrame {
		total += s.Step()
	}
	s.frameCount++
	return total
}

// FrameBuffer returns the PPU's current output buffer for presentation.
func (s *System) FrameBuffer() *video.FrameBuffer {
	return s.bus.PPU().FrameBuffer()
}

// Joypad exposes the joypad model for the host input collaborator to drive.
func (s *System) Joypad() *memory.Joypad {
	return s.bus.Joypad()
}

// PC returns the CPU's current program counter, useful for a host status
// line or a future debugger.
func (s *System) PC() uint16 { return s.cpu.PC() }

// SP returns the CPU's current stack pointer.
func (s *System) SP() uint16 { return s.cpu.SP() }

// AF returns the accumulator and flag register packed as a 16-bit value
// (A in the high byte, F in the low byte).
func (s *System) AF() uint16 { return s.cpu.AF() }

// InstructionCount returns the number of instructions executed so far.
func (s *System) InstructionCount() uint64 { return s.instructionCount }

// FrameCount returns the number of frames completed so far.
func (s *System) FrameCount() uint64 { return s.frameCount }

// Bus returns the underlying Bus, for tests and debug tooling that need
// direct register access.
func (s *System) Bus() *Bus { return s.bus }
