// Package bitmap holds the scrolling glyph bitmap and the slot that hands it
// from the renderer to the scroller.
package bitmap

// Lines is the number of display lines per glyph (the matrix height).
const Lines = 8

// Bitmap is a contiguous glyph buffer.
//
// Row i is the glyph of character i: Lines bytes, one per display line from top
// to bottom. Bit 0 of each byte is the leftmost pixel, which is also the leading
// edge of the scroll.
type Bitmap struct {
	rows   int
	stride int
	buf    []byte
}

// New returns a blank bitmap with the given number of rows.
func New(rows int) *Bitmap {
	if rows < 0 {
		rows = 0
	}
	return &Bitmap{rows: rows, stride: Lines, buf: make([]byte, rows*Lines)}
}

// Rows returns the number of glyph rows.
func (b *Bitmap) Rows() int {
	if b == nil {
		return 0
	}
	return b.rows
}

// Row returns the Lines bytes of row i. The slice aliases the bitmap.
func (b *Bitmap) Row(i int) []byte {
	off := i * b.stride
	return b.buf[off : off+Lines : off+Lines]
}

// At returns the byte for one display line of row i.
func (b *Bitmap) At(i, line int) byte { return b.buf[i*b.stride+line] }

// Set stores the byte for one display line of row i.
func (b *Bitmap) Set(i, line int, v byte) { b.buf[i*b.stride+line] = v }

// Shift rotates the whole bitmap one pixel towards the leading edge.
//
// For every line each row shifts right by one bit and takes the next row's bit 0
// into its bit 7. The last row takes the first row's original bit 0, so the
// pattern wraps and Rows()*8 shifts restore it.
func (b *Bitmap) Shift() {
	if b == nil || b.rows == 0 {
		return
	}
	last := (b.rows - 1) * b.stride
	for line := 0; line < Lines; line++ {
		carry := b.buf[line] & 1
		off := line
		for ; off < last; off += b.stride {
			b.buf[off] = b.buf[off]>>1 | (b.buf[off+b.stride]&1)<<7
		}
		b.buf[off] = b.buf[off]>>1 | carry<<7
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	if b == nil {
		return nil
	}
	c := &Bitmap{rows: b.rows, stride: b.stride, buf: make([]byte, len(b.buf))}
	copy(c.buf, b.buf)
	return c
}

// Equal reports whether both bitmaps hold the same rows and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.Rows() != o.Rows() {
		return false
	}
	for i := 0; i < b.Rows(); i++ {
		for line := 0; line < Lines; line++ {
			if b.At(i, line) != o.At(i, line) {
				return false
			}
		}
	}
	return true
}
