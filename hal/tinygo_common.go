//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"
)

// The board has no framebuffer.
type tinyGoDisplay struct{}

func (tinyGoDisplay) Framebuffer() Framebuffer { return nil }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type serialerLogger struct {
	out machine.Serialer
}

func (l *serialerLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.out.WriteByte(s[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

func (l *serialerLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.out.WriteByte(b[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

type spiMatrix struct {
	bus drivers.SPI
	cs  *pinLED
}

func (m *spiMatrix) Bus() drivers.SPI { return m.bus }
func (m *spiMatrix) ChipSelect() LED  { return m.cs }
