package video

// Framebuffer dimensions (spec.md section 2 and 6).
const (
	Width  = 160
	Height = 144

	bytesPerPixel = 4
	BufferSize    = Width * Height * bytesPerPixel
)

// Shade values a 2-bit colour index can translate to via a palette register
// (spec.md section 4.8).
const (
	ShadeWhite     uint8 = 255
	ShadeLightGray uint8 = 192
	ShadeDarkGray  uint8 = 96
	ShadeBlack     uint8 = 0
)

// shadeTable maps a 2-bit palette-relative colour index to its shade byte.
var shadeTable = [4]uint8{ShadeWhite, ShadeLightGray, ShadeDarkGray, ShadeBlack}

// FrameBuffer is the PPU's pixel output: 160x144 pixels, each stored as
// (shade, shade, shade, 0xFF) - spec.md section 6.
type FrameBuffer struct {
	Pixels []byte
}

// NewFrameBuffer returns a framebuffer cleared to black.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{Pixels: make([]byte, BufferSize)}
	fb.Clear(ShadeBlack)
	return fb
}

// Clear fills every pixel with the given shade, alpha forced to 0xFF.
func (fb *FrameBuffer) Clear(shade uint8) {
	for i := 0; i < BufferSize; i += bytesPerPixel {
		fb.Pixels[i] = shade
		fb.Pixels[i+1] = shade
		fb.Pixels[i+2] = shade
		fb.Pixels[i+3] = 0xFF
	}
}

// SetPixel writes one shade at (x, y), expanding it to the 4-byte pixel
// layout spec.md section 6 describes.
func (fb *FrameBuffer) SetPixel(x, y int, shade uint8) {
	offset := (y*Width + x) * bytesPerPixel
	fb.Pixels[offset] = shade
	fb.Pixels[offset+1] = shade
	fb.Pixels[offset+2] = shade
	fb.Pixels[offset+3] = 0xFF
}

// paletteShade resolves a 2-bit colour index through a palette register
// (BGP/OBP0/OBP1) to the shade it represents.
func paletteShade(palette uint8, colorIndex uint8) uint8 {
	shadeIndex := (palette >> (colorIndex * 2)) & 0x03
	return shadeTable[shadeIndex]
}
