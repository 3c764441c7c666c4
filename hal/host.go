//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig selects the host peripherals. Empty fields fall back to the
// simulated device.
type HostConfig struct {
	// Port is a serial device path (e.g. /dev/ttyUSB0). Empty uses stdin/stdout.
	Port string
	Baud int
	// SPI is a periph.io SPI port name (e.g. /dev/spidev0.0). Empty simulates
	// the chain in the framebuffer.
	SPI string
	// LEDChip and LEDLine select a GPIO line for the heartbeat LED. An empty
	// chip logs LED changes instead.
	LEDChip string
	LEDLine int
	// Digits is the number of simulated chips.
	Digits int
}

const (
	defaultBaud   = 115200
	defaultDigits = 4
	cellPx        = 10
	// captionPx is the status strip below the matrix.
	captionPx = 12
)

type hostHAL struct {
	logger *hostLogger
	led    LED
	serial Serial
	matrix MatrixPort
	sim    *simMatrix
	fb     *hostFramebuffer
	t      *hostTime

	closers []io.Closer
}

// New returns a host HAL implementation. Close releases opened devices.
func New(cfg HostConfig) (HAL, error) {
	return newHost(cfg)
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	if cfg.Baud <= 0 {
		cfg.Baud = defaultBaud
	}
	if cfg.Digits <= 0 {
		cfg.Digits = defaultDigits
	}

	h := &hostHAL{
		logger: &hostLogger{w: os.Stdout, eol: "\n"},
		fb:     newHostFramebuffer(cfg.Digits*8*cellPx, 8*cellPx+captionPx),
		t:      newHostTime(),
	}

	var err error
	switch {
	case cfg.Port != "":
		var p *portSerial
		p, err = openPortSerial(cfg.Port, cfg.Baud)
		if err == nil {
			h.serial = p
			h.closers = append(h.closers, p)
		}
	case isTerminal(os.Stdin):
		var ts *terminalSerial
		ts, err = newTerminalSerial(os.Stdin, os.Stdout)
		if err == nil {
			h.serial = ts
			h.closers = append(h.closers, ts)
			// Raw mode: the terminal no longer maps \n to \r\n.
			h.logger.eol = "\r\n"
		}
	default:
		h.serial = newHostSerial(os.Stdin, os.Stdout)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SPI != "" {
		bus, err := openSPIBus(cfg.SPI)
		if err != nil {
			_ = h.Close()
			return nil, err
		}
		h.matrix = bus
		h.closers = append(h.closers, bus)
	} else {
		h.sim = newSimMatrix(cfg.Digits, h.fb)
		h.matrix = h.sim
	}

	if cfg.LEDChip != "" {
		led, err := openGPIOLED(cfg.LEDChip, cfg.LEDLine)
		if err != nil {
			_ = h.Close()
			return nil, err
		}
		h.led = led
		h.closers = append(h.closers, led)
	} else {
		h.led = &hostLED{logger: h.logger}
	}

	return h, nil
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) Serial() Serial     { return h.serial }
func (h *hostHAL) Matrix() MatrixPort { return h.matrix }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time         { return h.t }

// Close releases devices in reverse opening order.
func (h *hostHAL) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("hal close: %w", err)
	}
	return nil
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu  sync.Mutex
	w   io.Writer
	eol string
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	io.WriteString(l.w, l.eol)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	io.WriteString(l.w, l.eol)
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
