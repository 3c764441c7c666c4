//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

const portReadTimeout = 50 * time.Millisecond

// portSerial is a real UART (USB adapter, /dev/ttyAMA0, COM port).
type portSerial struct {
	p *serial.Port
}

func openPortSerial(name string, baud int) (*portSerial, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: portReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	return &portSerial{p: p}, nil
}

// Read maps a read timeout, which the port reports as an empty EOF read, to
// (0, nil).
func (s *portSerial) Read(b []byte) (int, error) {
	n, err := s.p.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

func (s *portSerial) Write(b []byte) (int, error) { return s.p.Write(b) }

func (s *portSerial) Close() error { return s.p.Close() }
