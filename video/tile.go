package video

import "github.com/Xander-Br/dmg-emulator/bit"

// tileCount is the number of 16-byte tiles addressable in VRAM's tile data
// area (0x8000-0x97FF): 0x1800 bytes / 16 bytes per tile.
const tileCount = 384

// Tile is a decoded 8x8 block of 2-bit colour indices (spec.md section 4.8).
// It is kept as a write-through cache of VRAM so the scanline renderer never
// has to re-extract bits from raw tile bytes (Design Note "PPU tile cache
// coherence").
type Tile [8][8]uint8

// decodeTileRow decodes one 8-pixel row from its two VRAM bytes. For pixel
// index p in [0,7], the colour index is (bit(7-p) of high << 1) | bit(7-p)
// of low, per spec.md section 4.8.
func decodeTileRow(low, high uint8) [8]uint8 {
	var row [8]uint8
	for p := 0; p < 8; p++ {
		bitIndex := uint8(7 - p)
		var colorIndex uint8
		if bit.IsSet(bitIndex, low) {
			colorIndex |= 1
		}
		if bit.IsSet(bitIndex, high) {
			colorIndex |= 2
		}
		row[p] = colorIndex
	}
	return row
}

// tileIndexForAddressingMode resolves a raw tile-map byte to a tile-cache
// index, honouring LCDC's signed (0x8800) addressing mode.
func tileIndexForAddressingMode(rawTileIndex uint8, signedMode bool) int {
	if signedMode {
		return 256 + int(int8(rawTileIndex))
	}
	return int(rawTileIndex)
}
