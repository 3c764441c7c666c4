//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalSerial puts the controlling terminal into raw mode and edits one
// line at a time, so a message reaches the receiver only on Enter.
type terminalSerial struct {
	fd  int
	old *term.State

	mu  sync.Mutex
	out io.Writer
	ed  lineEditor

	lines chan []byte
	eof   chan struct{}
	rest  []byte

	closeOnce sync.Once
}

func newTerminalSerial(in *os.File, out io.Writer) (*terminalSerial, error) {
	fd := int(in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("terminal raw mode: %w", err)
	}
	s := &terminalSerial{
		fd:    fd,
		old:   old,
		out:   out,
		lines: make(chan []byte, 16),
		eof:   make(chan struct{}),
	}
	go s.readLoop(in)
	return s, nil
}

func (s *terminalSerial) readLoop(in io.Reader) {
	defer close(s.eof)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			echo, line, intr := s.ed.feed(buf[0])
			if len(echo) > 0 {
				s.mu.Lock()
				_, _ = s.out.Write(echo)
				s.mu.Unlock()
			}
			if line != nil {
				s.lines <- line
			}
			if intr {
				interruptSelf()
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func interruptSelf() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(os.Interrupt)
}

// Read returns (0, nil) until a full line has been entered.
func (s *terminalSerial) Read(p []byte) (int, error) {
	if len(s.rest) == 0 {
		select {
		case line := <-s.lines:
			s.rest = line
		case <-s.eof:
			select {
			case line := <-s.lines:
				s.rest = line
			default:
				return 0, io.EOF
			}
		default:
			return 0, nil
		}
	}
	n := copy(p, s.rest)
	s.rest = s.rest[n:]
	return n, nil
}

func (s *terminalSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

// Close restores the terminal state.
func (s *terminalSerial) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = term.Restore(s.fd, s.old)
	})
	return err
}

// lineEditor is a minimal raw-mode line discipline.
type lineEditor struct {
	buf []byte
}

// feed consumes one input byte and returns what to echo, a completed line
// (terminated by '\n') and whether the user asked to quit.
func (e *lineEditor) feed(b byte) (echo, line []byte, interrupt bool) {
	switch {
	case b == '\r' || b == '\n':
		line = append(e.buf, '\n')
		e.buf = nil
		return []byte("\r\n"), line, false
	case b == 0x7F || b == 0x08:
		if len(e.buf) == 0 {
			return nil, nil, false
		}
		e.buf = e.buf[:len(e.buf)-1]
		return []byte("\b \b"), nil, false
	case b == 0x03 || b == 0x04:
		return []byte("\r\n"), nil, true
	case b >= 0x20 && b < 0x7F:
		e.buf = append(e.buf, b)
		return []byte{b}, nil, false
	}
	return nil, nil, false
}
