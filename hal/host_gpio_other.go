//go:build !tinygo && !linux

package hal

import "fmt"

type gpioLED struct{}

func openGPIOLED(chip string, offset int) (*gpioLED, error) {
	return nil, fmt.Errorf("gpio %s line %d: %w", chip, offset, ErrNotImplemented)
}

func (l *gpioLED) High()        {}
func (l *gpioLED) Low()         {}
func (l *gpioLED) Close() error { return nil }
