//go:build !tinygo && linux

package hal

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// gpioLED is a GPIO character-device line driven as an output.
type gpioLED struct {
	line *gpiocdev.Line
}

func openGPIOLED(chip string, offset int) (*gpioLED, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", chip, offset, err)
	}
	return &gpioLED{line: l}, nil
}

func (l *gpioLED) High() { _ = l.line.SetValue(1) }
func (l *gpioLED) Low()  { _ = l.line.SetValue(0) }

func (l *gpioLED) Close() error {
	_ = l.line.SetValue(0)
	return l.line.Close()
}
