package video

import (
	"github.com/Xander-Br/dmg-emulator/addr"
	"github.com/Xander-Br/dmg-emulator/bit"
)

// Mode is one of the four PPU rendering stages, matching STAT bits 1-0
// (spec.md section 4.8).
type Mode uint8

const (
	ModeHBlank  Mode = 0
	ModeVBlank  Mode = 1
	ModeOAMScan Mode = 2
	ModeDrawing Mode = 3
)

// Per-scanline cycle budget (spec.md section 4.8).
const (
	oamScanCycles    = 80
	drawingCycles    = 172
	hblankCycles     = 204
	vblankLineCycles = oamScanCycles + drawingCycles + hblankCycles // 456
)

// LCDC (LCD Control) bit positions.
const (
	lcdcDisplayEnable       uint8 = 7
	lcdcWindowTileMapSelect uint8 = 6
	lcdcWindowEnable        uint8 = 5
	lcdcBGWindowTileData    uint8 = 4
	lcdcBGTileMapSelect     uint8 = 3
	lcdcSpriteSize          uint8 = 2
	lcdcSpriteEnable        uint8 = 1
	lcdcBGEnable            uint8 = 0
)

// STAT (LCDC Status) bit positions.
const (
	statLYCInterruptEnable    uint8 = 6
	statOAMInterruptEnable    uint8 = 5
	statVBlankInterruptEnable uint8 = 4
	statHBlankInterruptEnable uint8 = 3
	statLYCEqualsLY           uint8 = 2
)

// PPU is the pixel processing unit: VRAM, OAM, the LCD registers, the
// decoded tile cache, the mode state machine, the scanline renderer and
// the output framebuffer (spec.md section 4.8).
type PPU struct {
	vram    [0x2000]byte
	objects [spriteCount]ObjectData
	tileSet [tileCount]Tile

	framebuffer *FrameBuffer
	bgShadow    [Width]uint8 // per-line background colour index, for sprite priority

	lcdc, stat, scy, scx, lyc, bgp, obp0, obp1, wy, wx uint8

	line             int
	mode             Mode
	cycleAccumulator int
}

// NewPPU returns a PPU in the post-boot power-on state: LCD on, mode
// OAMScan, line 0 (the LCDC=0x91 reset value from spec.md section 8).
func NewPPU() *PPU {
	p := &PPU{
		framebuffer: NewFrameBuffer(),
		lcdc:        0x91,
		mode:        ModeOAMScan,
	}
	return p
}

// FrameBuffer returns the PPU's output buffer for presentation.
func (p *PPU) FrameBuffer() *FrameBuffer { return p.framebuffer }

// Line returns the current scanline (the LY register).
func (p *PPU) Line() int { return p.line }

// CurrentMode returns the current PPU mode.
func (p *PPU) CurrentMode() Mode { return p.mode }

func (p *PPU) lcdEnabled() bool {
	return bit.IsSet(lcdcDisplayEnable, p.lcdc)
}

// ReadVRAM reads a raw byte from the given zero-based VRAM offset.
func (p *PPU) ReadVRAM(offset uint16) uint8 {
	return p.vram[offset]
}

// WriteVRAM writes a raw byte to the given zero-based VRAM offset and, if
// it falls within the tile-data area (0x0000-0x17FF, i.e. 0x8000-0x97FF),
// refreshes the cached tile row it belongs to (spec.md section 4.8, Design
// Note "PPU tile cache coherence"). Writes above 0x97FF (tile maps) bypass
// the cache.
func (p *PPU) WriteVRAM(offset uint16, value uint8) {
	p.vram[offset] = value

	if offset >= 0x1800 {
		return
	}

	tileIndex := offset / 16
	rowIndex := (offset % 16) / 2
	rowBase := tileIndex*16 + rowIndex*2

	low := p.vram[rowBase]
	high := p.vram[rowBase+1]
	p.tileSet[tileIndex][rowIndex] = decodeTileRow(low, high)
}

// Sprite returns the decoded OAM entry at the given index (0-39), for debug
// tooling and tests that need the translated Y/X fields rather than raw
// OAM bytes.
func (p *PPU) Sprite(index int) ObjectData {
	return p.objects[index]
}

// ReadOAM reads a raw OAM byte, reconstructed from the decoded sprite table.
func (p *PPU) ReadOAM(offset uint16) uint8 {
	return readOAMByte(&p.objects, offset)
}

// WriteOAM decodes offset/4's sprite field from the written byte.
func (p *PPU) WriteOAM(offset uint16, value uint8) {
	writeOAMByte(&p.objects, offset, value)
}

// LCDC/STAT/etc. register accessors, routed here by the Bus.

func (p *PPU) LCDC() uint8 { return p.lcdc }

func (p *PPU) WriteLCDC(value uint8) {
	wasEnabled := p.lcdEnabled()
	p.lcdc = value

	if !wasEnabled && p.lcdEnabled() {
		// Powering the LCD back on restarts the scanline state machine.
		p.line = 0
		p.mode = ModeOAMScan
		p.cycleAccumulator = 0
	}
}

func (p *PPU) STAT() uint8 {
	return p.stat&0xFC | uint8(p.mode)
}

func (p *PPU) WriteSTAT(value uint8) {
	// Bits 0-2 are hardware-controlled (mode, LYC==LY); only bits 3-6 are
	// writable.
	p.stat = p.stat&0x07 | value&0x78
}

func (p *PPU) SCY() uint8         { return p.scy }
func (p *PPU) WriteSCY(v uint8)   { p.scy = v }
func (p *PPU) SCX() uint8         { return p.scx }
func (p *PPU) WriteSCX(v uint8)   { p.scx = v }
func (p *PPU) LY() uint8          { return uint8(p.line) }
func (p *PPU) LYC() uint8         { return p.lyc }
func (p *PPU) WriteLYC(v uint8)   { p.lyc = v }
func (p *PPU) BGP() uint8         { return p.bgp }
func (p *PPU) WriteBGP(v uint8)   { p.bgp = v }
func (p *PPU) OBP0() uint8        { return p.obp0 }
func (p *PPU) WriteOBP0(v uint8)  { p.obp0 = v }
func (p *PPU) OBP1() uint8        { return p.obp1 }
func (p *PPU) WriteOBP1(v uint8)  { p.obp1 = v }
func (p *PPU) WY() uint8          { return p.wy }
func (p *PPU) WriteWY(v uint8)    { p.wy = v }
func (p *PPU) WX() uint8          { return p.wx }
func (p *PPU) WriteWX(v uint8)    { p.wx = v }

// checkLYC updates STAT's LY==LYC bit and requests LCDSTAT if the LYC
// interrupt is enabled and the comparison just became true.
func (p *PPU) checkLYC(requested *uint8) {
	if p.line == int(p.lyc) {
		p.stat = bit.Set(statLYCEqualsLY, p.stat)
		if bit.IsSet(statLYCInterruptEnable, p.stat) {
			*requested |= uint8(addr.LCDSTATInterrupt)
		}
	} else {
		p.stat = bit.Reset(statLYCEqualsLY, p.stat)
	}
}

// Step advances the PPU by n machine cycles, returning a bitmask (in
// addr.Interrupt units) of interrupts newly requested during the step
// (spec.md section 4.8's mode transition table).
func (p *PPU) Step(n int) uint8 {
	if !p.lcdEnabled() {
		p.line = 0
		p.mode = ModeHBlank
		p.cycleAccumulator = 0
		return 0
	}

	var requested uint8
	p.cycleAccumulator += n

stepLoop:
	for {
		switch p.mode {
		case ModeOAMScan:
			if p.cycleAccumulator < oamScanCycles {
				break stepLoop
			}
			p.cycleAccumulator -= oamScanCycles
			p.mode = ModeDrawing

		case ModeDrawing:
			if p.cycleAccumulator < drawingCycles {
				break stepLoop
			}
			p.cycleAccumulator -= drawingCycles
			p.renderScanline()
			p.mode = ModeHBlank
			if bit.IsSet(statHBlankInterruptEnable, p.stat) {
				requested |= uint8(addr.LCDSTATInterrupt)
			}

		case ModeHBlank:
			if p.cycleAccumulator < hblankCycles {
				break stepLoop
			}
			p.cycleAccumulator -= hblankCycles

			nextLine := p.line + 1
			if nextLine < 144 {
				p.line = nextLine
				p.checkLYC(&requested)
				p.mode = ModeOAMScan
				if bit.IsSet(statOAMInterruptEnable, p.stat) {
					requested |= uint8(addr.LCDSTATInterrupt)
				}
			} else {
				p.line = 144
				p.mode = ModeVBlank
				requested |= uint8(addr.VBlankInterrupt)
				if bit.IsSet(statVBlankInterruptEnable, p.stat) {
					requested |= uint8(addr.LCDSTATInterrupt)
				}
			}

		case ModeVBlank:
			if p.cycleAccumulator < vblankLineCycles {
				break stepLoop
			}
			p.cycleAccumulator -= vblankLineCycles

			if p.line < 153 {
				p.line++
				p.checkLYC(&requested)
			} else {
				p.line = 0
				p.checkLYC(&requested)
				p.mode = ModeOAMScan
				if bit.IsSet(statOAMInterruptEnable, p.stat) {
					requested |= uint8(addr.LCDSTATInterrupt)
				}
			}
		}
	}

	return requested
}

// renderScanline renders the current line into the framebuffer: background,
// then window, then sprites (spec.md section 4.8).
func (p *PPU) renderScanline() {
	p.renderBackground()
	p.renderWindow()
	p.renderSprites()
}

func (p *PPU) renderBackground() {
	if !bit.IsSet(lcdcBGEnable, p.lcdc) {
		shade := paletteShade(p.bgp, 0)
		for x := 0; x < Width; x++ {
			p.framebuffer.SetPixel(x, p.line, shade)
			p.bgShadow[x] = 0
		}
		return
	}

	signedMode := !bit.IsSet(lcdcBGWindowTileData, p.lcdc)
	tileMapBase := addr.TileMap0
	if bit.IsSet(lcdcBGTileMapSelect, p.lcdc) {
		tileMapBase = addr.TileMap1
	}

	mapY := (int(p.scy) + p.line) & 0xFF
	mapRow := mapY / 8
	tileRow := mapY % 8

	for x := 0; x < Width; x++ {
		mapX := (int(p.scx) + x) & 0xFF
		mapCol := mapX / 8
		tileCol := mapX % 8

		mapOffset := tileMapBase - addr.VRAMStart + uint16(mapRow*32+mapCol)
		rawTile := p.vram[mapOffset]
		tileIndex := tileIndexForAddressingMode(rawTile, signedMode)

		colorIndex := p.tileSet[tileIndex][tileRow][tileCol]
		shade := paletteShade(p.bgp, colorIndex)

		p.framebuffer.SetPixel(x, p.line, shade)
		p.bgShadow[x] = colorIndex
	}
}

func (p *PPU) renderWindow() {
	if !bit.IsSet(lcdcWindowEnable, p.lcdc) {
		return
	}
	if int(p.wy) > p.line {
		return
	}
	windowX := int(p.wx) - 7
	if windowX >= Width {
		return
	}

	signedMode := !bit.IsSet(lcdcBGWindowTileData, p.lcdc)
	tileMapBase := addr.TileMap0
	if bit.IsSet(lcdcWindowTileMapSelect, p.lcdc) {
		tileMapBase = addr.TileMap1
	}

	windowLine := p.line - int(p.wy)
	mapRow := windowLine / 8
	tileRow := windowLine % 8

	for x := 0; x < Width; x++ {
		if x < windowX {
			continue
		}

		windowCol := x - windowX
		mapCol := windowCol / 8
		tileCol := windowCol % 8

		mapOffset := tileMapBase - addr.VRAMStart + uint16(mapRow*32+mapCol)
		rawTile := p.vram[mapOffset]
		tileIndex := tileIndexForAddressingMode(rawTile, signedMode)

		colorIndex := p.tileSet[tileIndex][tileRow][tileCol]
		shade := paletteShade(p.bgp, colorIndex)

		p.framebuffer.SetPixel(x, p.line, shade)
		p.bgShadow[x] = colorIndex
	}
}

const maxSpritesPerLine = 10

func (p *PPU) renderSprites() {
	if !bit.IsSet(lcdcSpriteEnable, p.lcdc) {
		return
	}

	spriteHeight := 8
	if bit.IsSet(lcdcSpriteSize, p.lcdc) {
		spriteHeight = 16
	}

	drawn := 0
	for i := 0; i < spriteCount && drawn < maxSpritesPerLine; i++ {
		sprite := p.objects[i]
		if p.line < sprite.Y || p.line >= sprite.Y+spriteHeight {
			continue
		}
		drawn++
		p.renderSprite(sprite, spriteHeight)
	}
}

func (p *PPU) renderSprite(sprite ObjectData, spriteHeight int) {
	rowInSprite := p.line - sprite.Y
	if sprite.FlipY() {
		rowInSprite = spriteHeight - 1 - rowInSprite
	}

	tileIndex := int(sprite.Tile)
	tileRow := rowInSprite
	if spriteHeight == 16 {
		tileIndex &= 0xFE
		if rowInSprite >= 8 {
			tileIndex |= 0x01
			tileRow = rowInSprite - 8
		}
	}

	palette := p.obp0
	if sprite.Palette() {
		palette = p.obp1
	}

	for col := 0; col < 8; col++ {
		x := sprite.X + col
		if x < 0 || x >= Width {
			continue
		}

		tileCol := col
		if sprite.FlipX() {
			tileCol = 7 - col
		}

		colorIndex := p.tileSet[tileIndex][tileRow][tileCol]
		if colorIndex == 0 {
			continue // transparent
		}

		if !sprite.Priority() && p.bgShadow[x] != 0 {
			continue // background wins priority
		}

		shade := paletteShade(palette, colorIndex)
		p.framebuffer.SetPixel(x, p.line, shade)
	}
}

