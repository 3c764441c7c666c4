package rxring

import "ticker/tickeros/proto"

// Framer extracts one message per idle-line event from a Ring.
type Framer struct {
	ring   *Ring
	last   int
	window int
}

// NewFramer returns a framer consuming from the ring's current write offset.
// Extracted messages are padded with spaces to at least window bytes.
func NewFramer(ring *Ring, window int) *Framer {
	return &Framer{ring: ring, last: ring.Offset(), window: window}
}

// Last returns the write offset consumed by the previous extraction.
func (f *Framer) Last() int { return f.last }

// Next consumes everything written since the previous call and frames it.
//
// The final byte is the line terminator and is dropped. A delta of 0 or 1
// (nothing, or only a terminator) yields the shared default message.
func (f *Framer) Next() proto.Message {
	cur := f.ring.Offset()
	delta := f.ring.Distance(f.last, cur)
	start := f.last
	f.last = cur

	if delta <= 1 {
		return proto.DefaultMessage()
	}

	n := delta - 1
	size := n
	if size < f.window {
		size = f.window
	}
	payload := make([]byte, size)
	f.ring.CopyAt(payload[:n], start)
	for i := n; i < size; i++ {
		payload[i] = ' '
	}
	return proto.Message{Payload: payload}
}
