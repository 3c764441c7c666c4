// Package rxring holds the UART receive ring and the framing logic that turns
// its write offset into discrete line messages.
package rxring

import (
	"sync"
	"sync/atomic"
)

// DefaultSize is the receive ring size used by the firmware.
const DefaultSize = 256

// Ring is a circular receive buffer with one writer and one reader.
//
// The writer (the UART driver, standing in for a circular DMA stream) appends
// bytes and advances the write offset; the reader compares offsets to learn how
// much arrived. The offset is atomic so readers never block the writer.
// Once the writer laps the reader, the overwritten bytes are lost.
type Ring struct {
	mu   sync.Mutex
	buf  []byte
	head atomic.Uint32
}

// New returns a ring of the given size (DefaultSize if size <= 0).
func New(size int) *Ring {
	if size <= 0 {
		size = DefaultSize
	}
	return &Ring{buf: make([]byte, size)}
}

// Size returns the ring capacity in bytes.
func (r *Ring) Size() int { return len(r.buf) }

// Offset returns the current write offset in [0, Size).
func (r *Ring) Offset() int { return int(r.head.Load()) }

// Write appends p, wrapping at the end of the ring. It never fails.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.buf)
	head := int(r.head.Load())
	for _, b := range p {
		r.buf[head] = b
		head++
		if head == size {
			head = 0
		}
	}
	r.head.Store(uint32(head))
	return len(p), nil
}

// CopyAt fills dst with the bytes starting at off, wrapping at the end of the ring.
//
// A span that crosses the physical end is copied in two passes: the tail of the
// buffer, then its head.
func (r *Ring) CopyAt(dst []byte, off int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.buf)
	if size == 0 || len(dst) == 0 {
		return
	}
	off %= size
	if off < 0 {
		off += size
	}
	n := copy(dst, r.buf[off:])
	for n < len(dst) {
		n += copy(dst[n:], r.buf)
	}
}

// Distance returns how many bytes were written going from offset from to offset to.
func (r *Ring) Distance(from, to int) int {
	size := len(r.buf)
	if size == 0 {
		return 0
	}
	d := (to - from) % size
	if d < 0 {
		d += size
	}
	return d
}
