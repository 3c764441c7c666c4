//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *serialerLogger
	led    *pinLED
	serial *uartSerial
	matrix *spiMatrix
	t      *tinyGoTime
}

// New returns a Raspberry Pi Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// MAX7219 chain: SPI0 SCK GP18 / SDO GP19, LOAD (chip-select) on GP17.
// Logs go to the USB serial console.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	bus := machine.SPI0
	_ = bus.Configure(machine.SPIConfig{
		Frequency: 10_000_000,
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Mode:      0,
	})
	cs := machine.GP17
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &serialerLogger{out: machine.Serial},
		led:    &pinLED{pin: ledPin},
		serial: &uartSerial{uart: uart},
		matrix: &spiMatrix{bus: bus, cs: &pinLED{pin: cs}},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) Serial() Serial     { return h.serial }
func (h *tinyGoHAL) Matrix() MatrixPort { return h.matrix }
func (h *tinyGoHAL) Display() Display   { return tinyGoDisplay{} }
func (h *tinyGoHAL) Time() Time         { return h.t }
