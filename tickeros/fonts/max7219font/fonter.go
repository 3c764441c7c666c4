package max7219font

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font exposes the matrix glyphs as a tinyfont.Fonter for framebuffer captions.
//
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font8x8{}

type font8x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	var code byte
	if g.r >= 0 && g.r < 0x80 {
		code = byte(g.r)
	}
	rows := Glyph(code)
	for row := 0; row < Height; row++ {
		b := rows[row]
		for col := 0; col < 8; col++ {
			if b&(1<<col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(7-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    8,
		Height:   Height,
		XAdvance: 8,
		XOffset:  0,
		YOffset:  -7,
	}
}

func (f *font8x8) GetYAdvance() uint8 { return Height }

func (f *font8x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}
