//go:build !tinygo

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// MAX7219 tolerates at most 10 MHz.
const spiMaxFreq = 10 * physic.MegaHertz

// spiBus drives a real chain through a Linux spidev port. The kernel driver
// toggles chip-select around each transfer, so there is no separate latch.
type spiBus struct {
	port spi.PortCloser
	conn spi.Conn
}

func openSPIBus(name string) (*spiBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", name, err)
	}
	c, err := p.Connect(spiMaxFreq, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("connect spi %q: %w", name, err)
	}
	return &spiBus{port: p, conn: c}, nil
}

func (b *spiBus) Bus() drivers.SPI { return b }
func (b *spiBus) ChipSelect() LED  { return nil }

func (b *spiBus) Tx(w, r []byte) error { return b.conn.Tx(w, r) }

func (b *spiBus) Transfer(v byte) (byte, error) {
	r := []byte{0}
	err := b.conn.Tx([]byte{v}, r)
	return r[0], err
}

func (b *spiBus) Close() error { return b.port.Close() }
