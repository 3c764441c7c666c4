package glyphs

import (
	"ticker/tickeros/bitmap"
	"ticker/tickeros/fonts/max7219font"
	"ticker/tickeros/proto"
)

// Render builds the bitmap for msg, one row per character, padded with blank
// rows to at least digits rows.
func Render(msg proto.Message, digits int) *bitmap.Bitmap {
	rows := msg.Len()
	if rows < digits {
		rows = digits
	}
	b := bitmap.New(rows)
	for i, c := range msg.Payload {
		copy(b.Row(i), max7219font.Glyph(c))
	}
	// Rows past the payload stay zero, which is glyph 0.
	return b
}
