package app

import (
	"image/color"

	"ticker/hal"
	"ticker/tickeros/fonts/max7219font"

	"tinygo.org/x/tinyfont"
)

// drawBootCaption writes a status line along the bottom edge of the display,
// below the matrix area.
func drawBootCaption(h hal.HAL, text string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	d := fbDisplay{fb: fb}
	_, hgt := d.Size()
	tinyfont.WriteLine(d, max7219font.Font, 0, hgt-2, text, color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF})
	_ = fb.Present()
}

// fbDisplay adapts an RGB565 framebuffer to drivers.Displayer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := hal.RGB565(c)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d fbDisplay) Display() error { return nil }
