//go:build !tinygo

package hal

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// lineGap is the pause inserted after each line read from a pipe, so the
// receiver sees one idle line per message.
const lineGap = 50 * time.Millisecond

// hostSerial reads a non-terminal stdin (pipe or file) and writes stdout.
type hostSerial struct {
	mu sync.Mutex
	w  io.Writer

	r     *bufio.Reader
	pause bool
}

func newHostSerial(r io.Reader, w io.Writer) *hostSerial {
	s := &hostSerial{w: w}
	if r != nil {
		s.r = bufio.NewReader(r)
	}
	return s
}

// Read returns at most one line.
func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	if s.pause {
		time.Sleep(lineGap)
		s.pause = false
	}
	n := 0
	for n < len(p) {
		b, err := s.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			s.pause = true
			break
		}
		if s.r.Buffered() == 0 {
			break
		}
	}
	return n, nil
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
