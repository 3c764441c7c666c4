package hal

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Serial is the UART carrying ticker messages.
//
// Read may return (0, nil) when no byte is pending; callers poll again on the
// next tick.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// MatrixPort is the SPI wiring of the MAX7219 chain.
//
// ChipSelect is nil when the bus toggles chip-select on its own.
type MatrixPort interface {
	Bus() drivers.SPI
	ChipSelect() LED
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// One tick is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Serial() Serial
	Matrix() MatrixPort
	Display() Display
	Time() Time
}
