package hal

import "image/color"

// RGB565 packs c into the PixelFormatRGB565 encoding. Alpha is ignored.
func RGB565(c color.RGBA) uint16 {
	return rgb565(c.R, c.G, c.B)
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)&0x1F<<11 | uint16(g>>2)&0x3F<<5 | uint16(b>>3)&0x1F
}

// rgb888From565 expands p back to 8 bits per channel, so full-scale 565
// values map to 0xFF.
func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// ledColors returns the simulated dot colours for a MAX7219 intensity
// register value: a dim red for an unlit dot and a red that brightens with
// intensity for a lit one.
func ledColors(intensity uint8) (off, on uint16) {
	level := 0x60 + (intensity&0x0F)*0x09
	return rgb565(0x20, 0x08, 0x08), rgb565(level, 0x10, 0x10)
}
