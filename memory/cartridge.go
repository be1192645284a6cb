// Package memory holds the RAM banks, cartridge ROM, timer and joypad
// components the Bus addresses into. Ownership and the address ranges
// these types serve follow spec.md sections 3 and 4.
package memory

import (
	"fmt"
	"log/slog"
)

const (
	minCartridgeSize = 0x8000 // 32 KiB, the plain ROM-only case (spec.md section 6)
	titleStart       = 0x0134
	titleEnd         = 0x0143
	bootROMMaxSize   = 256
)

// Cartridge is a read-only code/data store, optionally overlaid by a small
// boot ROM over the low addresses until disabled (spec.md section 4.2).
//
// Bank-switching (MBC1/2/3/5 and friends) is out of scope: only the plain
// 32 KiB ROM case is modelled, with bank N aliasing bank 0.
type Cartridge struct {
	data []byte

	bootROM        []byte
	bootROMEnabled bool
}

// NewCartridge creates a cartridge from ROM data, which must be at least
// minCartridgeSize bytes. The slice is copied; the caller retains ownership
// of the original.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < minCartridgeSize {
		return nil, fmt.Errorf("cartridge: rom is %d bytes, need at least %d", len(data), minCartridgeSize)
	}

	cart := &Cartridge{
		data: make([]byte, len(data)),
	}
	copy(cart.data, data)

	return cart, nil
}

// NewBlankCartridge returns a cartridge with no meaningful data, useful for
// tests and for constructing a Bus before a ROM has been loaded.
func NewBlankCartridge() *Cartridge {
	return &Cartridge{data: make([]byte, minCartridgeSize)}
}

// SetBootROM installs a boot ROM overlay, enabling it immediately. The boot
// ROM must be no larger than 256 bytes (spec.md section 3).
func (c *Cartridge) SetBootROM(data []byte) error {
	if len(data) > bootROMMaxSize {
		return fmt.Errorf("cartridge: boot rom is %d bytes, max is %d", len(data), bootROMMaxSize)
	}

	c.bootROM = make([]byte, len(data))
	copy(c.bootROM, data)
	c.bootROMEnabled = true
	return nil
}

// BootROMActive reports whether the boot ROM overlay is currently mapped.
func (c *Cartridge) BootROMActive() bool {
	return c.bootROMEnabled && c.bootROM != nil
}

// DisableBootROM permanently unmaps the boot ROM overlay. Triggered by a
// write to addr.BootROMDisable, routed here through the Bus.
func (c *Cartridge) DisableBootROM() {
	c.bootROMEnabled = false
}

// Read returns the byte at the given 16-bit address. Bank N (0x4000-0x7FFF)
// aliases bank 0, since only plain ROMs are supported.
func (c *Cartridge) Read(address uint16) uint8 {
	if c.BootROMActive() && address <= 0x00FF {
		if int(address) < len(c.bootROM) {
			return c.bootROM[address]
		}
		return 0xFF
	}

	offset := address
	if address >= 0x4000 {
		offset = address - 0x4000
	}

	if int(offset) >= len(c.data) {
		return 0xFF
	}
	return c.data[offset]
}

// Write discards writes to cartridge ROM: plain ROMs have no bank-select or
// RAM-enable registers to react to.
func (c *Cartridge) Write(address uint16, value uint8) {
	slog.Debug("cartridge: discarding write to ROM", "addr", address, "value", value)
}

// Title reads the 16-byte cartridge title field (0x0134-0x0143), trimming
// trailing NUL padding. It is read-only metadata exposure for a host status
// line, not parsed into bank/MBC configuration.
func (c *Cartridge) Title() string {
	if len(c.data) < titleEnd+1 {
		return ""
	}

	raw := c.data[titleStart : titleEnd+1]
	end := len(raw)
	for end > 0 && raw[end-1] == 0x00 {
		end--
	}
	return string(raw[:end])
}
