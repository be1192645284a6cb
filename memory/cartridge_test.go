package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func romOfSize(n int, fill byte) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = fill
	}
	return data
}

func TestNewCartridge_rejectsUndersizedROM(t *testing.T) {
	_, err := NewCartridge(make([]byte, 100))
	assert.Error(t, err)
}

func TestCartridge_bankNAliasesBank0(t *testing.T) {
	data := romOfSize(minCartridgeSize, 0)
	data[0x0010] = 0xAB
	cart, err := NewCartridge(data)
	assert.NoError(t, err)

	assert.Equal(t, uint8(0xAB), cart.Read(0x0010))
	assert.Equal(t, uint8(0xAB), cart.Read(0x4010))
}

func TestCartridge_writesAreDiscarded(t *testing.T) {
	cart := NewBlankCartridge()
	cart.Write(0x0100, 0xFF)
	assert.Equal(t, uint8(0x00), cart.Read(0x0100))
}

func TestCartridge_bootROMOverlay(t *testing.T) {
	data := romOfSize(minCartridgeSize, 0x11)
	cart, err := NewCartridge(data)
	assert.NoError(t, err)

	boot := []byte{0xAA, 0xBB}
	assert.NoError(t, cart.SetBootROM(boot))
	assert.True(t, cart.BootROMActive())
	assert.Equal(t, uint8(0xAA), cart.Read(0x0000))
	assert.Equal(t, uint8(0xBB), cart.Read(0x0001))
	// beyond the boot rom's own data, but still under the overlay, reads as 0xFF
	assert.Equal(t, uint8(0xFF), cart.Read(0x0002))
	// above the overlay window, falls through to cartridge ROM
	assert.Equal(t, uint8(0x11), cart.Read(0x0100))

	cart.DisableBootROM()
	assert.False(t, cart.BootROMActive())
	assert.Equal(t, uint8(0x11), cart.Read(0x0000))
}

func TestCartridge_bootROMTooLarge(t *testing.T) {
	cart := NewBlankCartridge()
	assert.Error(t, cart.SetBootROM(make([]byte, 512)))
}

func TestCartridge_title(t *testing.T) {
	data := romOfSize(minCartridgeSize, 0)
	copy(data[0x0134:], []byte("TETRIS"))
	cart, err := NewCartridge(data)
	assert.NoError(t, err)
	assert.Equal(t, "TETRIS", cart.Title())
}
