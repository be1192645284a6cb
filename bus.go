package dmgemulator

import (
	"fmt"

	"github.com/Xander-Br/dmg-emulator/addr"
	"github.com/Xander-Br/dmg-emulator/memory"
	"github.com/Xander-Br/dmg-emulator/video"
)

// dmaLength is the number of bytes OAM-DMA copies per transfer. spec.md's
// Design Note (b) fixes this at 160, the full OAM size; the Rust original
// this project was distilled from stops ten bytes short at 150.
const dmaLength = 160

// Bus is the unifying address decoder (spec.md section 4.7): it owns every
// peripheral and dispatches reads/writes into the region each belongs to,
// mirroring the region-switch style of the teacher's memory.MMU but against
// this project's split Cartridge/RAM/PPU/Timer/Joypad components rather
// than one monolithic MMU.
type Bus struct {
	cart   *memory.Cartridge
	ram    *memory.RAM
	ppu    *video.PPU
	timer  *memory.Timer
	joypad *memory.Joypad

	joypadColumn memory.Column

	ifReg uint8
	ieReg uint8

	serialOut uint8 // SB register; writes accepted and discarded (spec.md section 3)
}

// NewBus wires a Bus around the given cartridge with freshly reset
// peripherals (spec.md section 3, Ownership/lifecycle).
func NewBus(cart *memory.Cartridge) *Bus {
	return &Bus{
		cart:   cart,
		ram:    memory.NewRAM(),
		ppu:    video.NewPPU(),
		timer:  memory.NewTimer(),
		joypad: memory.NewJoypad(),
	}
}

// PPU exposes the PPU for framebuffer presentation by the host layer.
func (b *Bus) PPU() *video.PPU { return b.ppu }

// Joypad exposes the joypad for the host input collaborator to drive
// (spec.md section 6: input polling is an external concern).
func (b *Bus) Joypad() *memory.Joypad { return b.joypad }

// Read dispatches a read to the region the address falls in (spec.md
// section 3's address space table).
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= addr.ROMBankNEnd:
		return b.cart.Read(address)

	case address <= addr.VRAMEnd:
		return b.ppu.ReadVRAM(address - addr.VRAMStart)

	case address <= addr.ExtRAMEnd:
		return b.ram.ReadExternal(address - addr.ExtRAMStart)

	case address <= addr.WRAMEnd:
		return b.ram.ReadWork(address - addr.WRAMStart)

	case address <= addr.EchoEnd:
		return b.ram.ReadWork(address - addr.EchoStart)

	case address <= addr.OAMEnd:
		return b.ppu.ReadOAM(address - addr.OAMStart)

	case address <= addr.UnusableEnd:
		return 0xFF

	case address == addr.P1:
		return b.readP1()

	case address == addr.SB || address == addr.SC:
		return 0x00

	case address == addr.DIV:
		return b.timer.DIV()
	case address == addr.TIMA:
		return b.timer.TIMA()
	case address == addr.TMA:
		return b.timer.TMA()
	case address == addr.TAC:
		return b.timer.TAC()

	case address == addr.IF:
		return b.ifReg&0x1F | 0xE0

	case address >= addr.APUStart && address <= addr.APUEnd:
		return 0x00

	case address == addr.LCDC:
		return b.ppu.LCDC()
	case address == addr.STAT:
		return b.ppu.STAT()
	case address == addr.SCY:
		return b.ppu.SCY()
	case address == addr.SCX:
		return b.ppu.SCX()
	case address == addr.LY:
		return b.ppu.LY()
	case address == addr.LYC:
		return b.ppu.LYC()
	case address == addr.DMA:
		return 0xFF // write-only trigger; reads are not meaningful
	case address == addr.BGP:
		return b.ppu.BGP()
	case address == addr.OBP0:
		return b.ppu.OBP0()
	case address == addr.OBP1:
		return b.ppu.OBP1()
	case address == addr.WY:
		return b.ppu.WY()
	case address == addr.WX:
		return b.ppu.WX()

	case address == addr.BootROMDisable:
		return 0xFF

	case address <= addr.HRAMEnd && address >= addr.HRAMStart:
		return b.ram.ReadHigh(address - addr.HRAMStart)

	case address == addr.IE:
		return b.ieReg & 0x1F

	default:
		panic(fmt.Sprintf("bus: read address not implemented: 0x%04X", address))
	}
}

// Write dispatches a write to the region the address falls in.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= addr.ROMBankNEnd:
		b.cart.Write(address, value)

	case address <= addr.VRAMEnd:
		b.ppu.WriteVRAM(address-addr.VRAMStart, value)

	case address <= addr.ExtRAMEnd:
		b.ram.WriteExternal(address-addr.ExtRAMStart, value)

	case address <= addr.WRAMEnd:
		b.ram.WriteWork(address-addr.WRAMStart, value)

	case address <= addr.EchoEnd:
		// Echo writes are ignored (spec.md section 3's explicit design choice).

	case address <= addr.OAMEnd:
		b.ppu.WriteOAM(address-addr.OAMStart, value)

	case address <= addr.UnusableEnd:
		// Writes to the unusable region are ignored.

	case address == addr.P1:
		b.writeP1(value)

	case address == addr.SB || address == addr.SC:
		// Serial writes are accepted and discarded.

	case address == addr.DIV:
		b.timer.ResetDIV()
	case address == addr.TIMA:
		b.timer.SetTIMA(value)
	case address == addr.TMA:
		b.timer.SetTMA(value)
	case address == addr.TAC:
		b.timer.SetTAC(value)

	case address == addr.IF:
		b.ifReg = value & 0x1F

	case address >= addr.APUStart && address <= addr.APUEnd:
		// APU registers are accepted and discarded (spec.md section 1).

	case address == addr.LCDC:
		b.ppu.WriteLCDC(value)
	case address == addr.STAT:
		b.ppu.WriteSTAT(value)
	case address == addr.SCY:
		b.ppu.WriteSCY(value)
	case address == addr.SCX:
		b.ppu.WriteSCX(value)
	case address == addr.LY:
		// LY is read-only on real hardware; writes are discarded.
	case address == addr.LYC:
		b.ppu.WriteLYC(value)
	case address == addr.DMA:
		b.runOAMDMA(value)
	case address == addr.BGP:
		b.ppu.WriteBGP(value)
	case address == addr.OBP0:
		b.ppu.WriteOBP0(value)
	case address == addr.OBP1:
		b.ppu.WriteOBP1(value)
	case address == addr.WY:
		b.ppu.WriteWY(value)
	case address == addr.WX:
		b.ppu.WriteWX(value)

	case address == addr.BootROMDisable:
		b.cart.DisableBootROM()

	case address <= addr.HRAMEnd && address >= addr.HRAMStart:
		b.ram.WriteHigh(address-addr.HRAMStart, value)

	case address == addr.IE:
		b.ieReg = value & 0x1F

	default:
		panic(fmt.Sprintf("bus: write address not implemented: 0x%04X (value 0x%02X)", address, value))
	}
}

// ReadWord/WriteWord compose two little-endian 8-bit accesses (spec.md
// section 4.7).
func (b *Bus) ReadWord(address uint16) uint16 {
	low := b.Read(address)
	high := b.Read(address + 1)
	return uint16(high)<<8 | uint16(low)
}

func (b *Bus) WriteWord(address uint16, value uint16) {
	b.Write(address, uint8(value))
	b.Write(address+1, uint8(value>>8))
}

// readP1 returns the joypad register as encoded by the joypad model
// (teacher's mem.go updateJoypadRegister, minus the MMU-side state
// duplication: the column selection itself is tracked on the Joypad, set by
// writeP1).
func (b *Bus) readP1() uint8 {
	return b.joypad.ToByte()
}

// writeP1 decodes P1 bits 4-5 (column select) and forwards the selection to
// the joypad; bits 0-3 are read-only from software's perspective.
func (b *Bus) writeP1(value uint8) {
	selectDpad := value&0x10 == 0
	selectButtons := value&0x20 == 0

	switch {
	case selectDpad && selectButtons:
		b.joypad.SelectColumn(memory.ColumnNeither)
	case selectDpad:
		b.joypad.SelectColumn(memory.ColumnDirections)
	case selectButtons:
		b.joypad.SelectColumn(memory.ColumnActions)
	default:
		b.joypad.SelectColumn(memory.ColumnNeither)
	}
}

// runOAMDMA performs the synchronous OAM-DMA transfer (spec.md section 4.7):
// writing N to 0xFF46 copies dmaLength bytes from (N<<8) into OAM. The
// transfer's real 640-cycle duration is not simulated (documented
// limitation, spec.md section 4.7).
func (b *Bus) runOAMDMA(source uint8) {
	base := uint16(source) << 8
	for offset := uint16(0); offset < dmaLength; offset++ {
		b.ppu.WriteOAM(offset, b.Read(base+offset))
	}
}

// Step advances the Timer and PPU by n machine cycles, ORing any interrupt
// requests raised during the step into IF (spec.md section 4.6).
func (b *Bus) Step(cycles int) {
	if b.timer.Step(cycles) {
		b.ifReg |= uint8(addr.TimerInterrupt)
	}

	b.ifReg |= b.ppu.Step(cycles)

	if b.joypad.Step() {
		b.ifReg |= uint8(addr.JoypadInterrupt)
	}
}

// PendingInterrupt reports whether any enabled interrupt is currently
// flagged, the condition that wakes a halted CPU regardless of IME.
func (b *Bus) PendingInterrupt() bool {
	return b.ifReg&b.ieReg&0x1F != 0
}

// InterruptFlags returns the raw IF register for the CPU's interrupt
// service routine.
func (b *Bus) InterruptFlags() uint8 { return b.ifReg & 0x1F }

// SetInterruptFlags overwrites IF, used by the CPU to clear a serviced
// interrupt's bit.
func (b *Bus) SetInterruptFlags(value uint8) { b.ifReg = value & 0x1F }

// InterruptEnable returns the raw IE register.
func (b *Bus) InterruptEnable() uint8 { return b.ieReg & 0x1F }
