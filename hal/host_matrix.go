//go:build !tinygo

package hal

import (
	"sync"

	"tinygo.org/x/drivers"
)

const simRegs = 16

// simMatrix emulates a MAX7219 daisy chain and draws its LEDs into the
// framebuffer. Words shift in while chip-select is low; the last 2n bytes
// latch on the rising edge, the final word into chip 0 (leftmost).
type simMatrix struct {
	mu    sync.Mutex
	n     int
	shift []byte
	regs  [][simRegs]byte
	fb    *hostFramebuffer
}

func newSimMatrix(n int, fb *hostFramebuffer) *simMatrix {
	m := &simMatrix{n: n, regs: make([][simRegs]byte, n), fb: fb}
	m.redraw()
	return m
}

func (m *simMatrix) Bus() drivers.SPI { return m }
func (m *simMatrix) ChipSelect() LED  { return m }

func (m *simMatrix) Tx(w, r []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shift = append(m.shift, w...)
	if over := len(m.shift) - 2*m.n; over > 0 {
		m.shift = m.shift[over:]
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (m *simMatrix) Transfer(b byte) (byte, error) {
	return 0, m.Tx([]byte{b}, nil)
}

// Low starts a new transaction.
func (m *simMatrix) Low() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shift = m.shift[:0]
}

// High latches the shifted words.
func (m *simMatrix) High() {
	m.mu.Lock()
	defer m.mu.Unlock()
	words := len(m.shift) / 2
	for k := 0; k < words; k++ {
		chip := words - 1 - k
		if chip >= m.n {
			continue
		}
		reg := m.shift[2*k] & 0x0F
		m.regs[chip][reg] = m.shift[2*k+1]
	}
	m.shift = m.shift[:0]
	m.redraw()
}

// lit reports whether the LED at matrix column x, line y is on.
func (m *simMatrix) lit(x, y int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.litLocked(x/8, x%8, y)
}

func (m *simMatrix) litLocked(chip, bit, line int) bool {
	r := &m.regs[chip]
	if r[0x0C]&1 == 0 {
		return false
	}
	if r[0x0F]&1 != 0 {
		return true
	}
	if line > int(r[0x0B]&7) {
		return false
	}
	return r[1+line]&(1<<bit) != 0
}

func (m *simMatrix) redraw() {
	if m.fb == nil {
		return
	}
	m.fb.mu.Lock()
	defer m.fb.mu.Unlock()
	for chip := 0; chip < m.n; chip++ {
		off, on := ledColors(m.regs[chip][0x0A])
		for line := 0; line < 8; line++ {
			for bit := 0; bit < 8; bit++ {
				c := off
				if m.litLocked(chip, bit, line) {
					c = on
				}
				m.fb.fillCellLocked((chip*8+bit)*cellPx, line*cellPx, cellPx-1, c)
			}
		}
	}
}
