package video

import "github.com/Xander-Br/dmg-emulator/bit"

// spriteCount is the number of sprites OAM describes (spec.md section 4.8).
const spriteCount = 40

// ObjectData is one OAM sprite descriptor (spec.md section 4.8). Y and X
// are stored already translated from the raw OAM bytes (Y-16, X-8), so a
// sprite can be positioned fully off-screen without wrapping.
type ObjectData struct {
	Y, X  int
	Tile  uint8
	Flags uint8
}

// Palette selects OBP0 or OBP1 (flags bit 4).
func (o ObjectData) Palette() bool { return bit.IsSet(4, o.Flags) }

// FlipX is flags bit 5.
func (o ObjectData) FlipX() bool { return bit.IsSet(5, o.Flags) }

// FlipY is flags bit 6.
func (o ObjectData) FlipY() bool { return bit.IsSet(6, o.Flags) }

// Priority is flags bit 7: true means the sprite is drawn over the
// background (spec.md section 4.8's "priority=true means over background").
func (o ObjectData) Priority() bool { return bit.IsSet(7, o.Flags) }

// writeOAMByte updates the k/4-th sprite's y/x/tile/flags field depending
// on k%4, per spec.md section 4.8's "OAM write at offset k" rule.
func writeOAMByte(objects *[spriteCount]ObjectData, k uint16, value uint8) {
	sprite := &objects[k/4]
	switch k % 4 {
	case 0:
		sprite.Y = int(value) - 16
	case 1:
		sprite.X = int(value) - 8
	case 2:
		sprite.Tile = value
	case 3:
		sprite.Flags = value
	}
}

// readOAMByte reconstructs the raw OAM byte for offset k from the decoded
// sprite fields, for symmetric reads through the Bus.
func readOAMByte(objects *[spriteCount]ObjectData, k uint16) uint8 {
	sprite := objects[k/4]
	switch k % 4 {
	case 0:
		return uint8(sprite.Y + 16)
	case 1:
		return uint8(sprite.X + 8)
	case 2:
		return sprite.Tile
	default:
		return sprite.Flags
	}
}
