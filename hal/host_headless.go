//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is how often the runner steps. Each step publishes the milliseconds
	// elapsed since the previous one.
	Hz int
	// Ticks stops the runner after that many milliseconds (0 = run forever).
	Ticks uint64
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, host HostConfig, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 1000
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := newHost(host)
	if err != nil {
		return err
	}
	defer h.Close()

	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			if cfg.Ticks > 0 && h.t.seq >= cfg.Ticks {
				return nil
			}
		}
	}
}
