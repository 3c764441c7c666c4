// Package max7219 drives a daisy chain of MAX7219 LED matrix controllers.
//
// Every transaction shifts one 16-bit word per chip through the chain inside a
// single chip-select window; the first word sent ends up in the chip farthest
// from the controller.
package max7219

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

// Latch is the LOAD/CS line. High latches the shifted words into the chips.
type Latch interface {
	High()
	Low()
}

// Config holds the settings programmed at startup.
type Config struct {
	// Intensity is the PWM brightness, 0..15.
	Intensity uint8
}

// Chain is a cascade of n chips on one SPI bus.
type Chain struct {
	bus drivers.SPI
	cs  Latch
	n   int
	buf []byte
}

// New returns a chain of n chips. cs may be nil when the bus drives
// chip-select itself.
func New(bus drivers.SPI, cs Latch, n int) *Chain {
	if n < 1 {
		n = 1
	}
	return &Chain{bus: bus, cs: cs, n: n, buf: make([]byte, 2*n)}
}

// Len returns the number of chips in the chain.
// Len returns the number of chips; 0 for a nil chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return c.n
}

// Broadcast writes the same register value into every chip.
func (c *Chain) Broadcast(reg, data byte) error {
	for i := 0; i < c.n; i++ {
		c.buf[2*i] = reg
		c.buf[2*i+1] = data
	}
	return c.tx()
}

// WriteRow writes data[i] into register reg of the i-th word sent.
// len(data) must equal Len.
func (c *Chain) WriteRow(reg byte, data []byte) error {
	if len(data) != c.n {
		return fmt.Errorf("max7219: row of %d bytes for %d chips", len(data), c.n)
	}
	for i, b := range data {
		c.buf[2*i] = reg
		c.buf[2*i+1] = b
	}
	return c.tx()
}

// Configure puts every chip into raw matrix mode and clears it.
func (c *Chain) Configure(cfg Config) error {
	intensity := cfg.Intensity
	if intensity > 0x0F {
		intensity = 0x0F
	}
	cmds := [...][2]byte{
		{RegDisplayTest, 0x00},
		{RegShutdown, 0x00},
		{RegDecodeMode, 0x00},
		{RegIntensity, intensity},
		{RegScanLimit, Lines - 1},
		{RegShutdown, 0x01},
	}
	for _, cmd := range cmds {
		if err := c.Broadcast(cmd[0], cmd[1]); err != nil {
			return fmt.Errorf("max7219: configure reg %#02x: %w", cmd[0], err)
		}
	}
	return c.Clear()
}

// DisplayTest switches the built-in all-on test mode.
func (c *Chain) DisplayTest(on bool) error {
	var v byte
	if on {
		v = 1
	}
	return c.Broadcast(RegDisplayTest, v)
}

// Clear blanks every line of every chip.
func (c *Chain) Clear() error {
	var errs []error
	for line := 0; line < Lines; line++ {
		if err := c.Broadcast(RegDigit0+byte(line), 0); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Chain) tx() error {
	if c.cs != nil {
		c.cs.Low()
		defer c.cs.High()
	}
	return c.bus.Tx(c.buf, nil)
}
