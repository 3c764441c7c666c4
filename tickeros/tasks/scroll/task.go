package scroll

import (
	"ticker/tickeros/bitmap"
	"ticker/tickeros/client/logger"
	"ticker/tickeros/kernel"
	"ticker/tickeros/max7219"
)

// Config controls the scroll cadence and chain setup.
type Config struct {
	// Digits is the number of chips in the visible window.
	Digits int
	// ScrollTicks is the delay between two shift steps.
	ScrollTicks uint64
	// SelfTestTicks keeps the chips in display-test mode after power on.
	// Zero skips the test.
	SelfTestTicks uint64
	Intensity     uint8
}

// Task paints the visible window and rotates the current bitmap on a fixed cadence.
type Task struct {
	chain *max7219.Chain
	slot  *bitmap.Slot
	cfg   Config
	log   *kernel.Queue[string]

	row     []byte
	gen     uint32
	failing bool
}

func New(chain *max7219.Chain, slot *bitmap.Slot, cfg Config, log *kernel.Queue[string]) *Task {
	if cfg.Digits <= 0 && chain != nil {
		cfg.Digits = chain.Len()
	}
	if cfg.ScrollTicks == 0 {
		cfg.ScrollTicks = 1
	}
	return &Task{chain: chain, slot: slot, cfg: cfg, log: log, row: make([]byte, cfg.Digits)}
}

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil || t.chain == nil || t.slot == nil {
		return
	}
	if err := t.chain.Configure(max7219.Config{Intensity: t.cfg.Intensity}); err != nil {
		logger.Logf(t.log, "scroll: configure: %v", err)
	}
	if t.cfg.SelfTestTicks > 0 {
		if err := t.chain.DisplayTest(true); err != nil {
			logger.Logf(t.log, "scroll: display test: %v", err)
		}
		if !ctx.Sleep(t.cfg.SelfTestTicks) {
			return
		}
		if err := t.chain.DisplayTest(false); err != nil {
			logger.Logf(t.log, "scroll: display test: %v", err)
		}
	}

	for {
		t.Step()
		if !ctx.Sleep(t.cfg.ScrollTicks) {
			return
		}
	}
}

// Step paints the current bitmap and shifts it by one pixel.
func (t *Task) Step() {
	b, gen := t.slot.Load()
	if b == nil {
		return
	}
	if gen != t.gen {
		t.gen = gen
		logger.Logf(t.log, "scroll: showing gen %d", gen)
	}
	t.paint(b)
	b.Shift()
}

// paint writes the visible window, one latched row per display line. The
// last visible character goes out first so the first character lands in the
// outermost chip.
func (t *Task) paint(b *bitmap.Bitmap) {
	digits := t.cfg.Digits
	for line := 0; line < bitmap.Lines; line++ {
		for j := 0; j < digits; j++ {
			i := digits - 1 - j
			if i < b.Rows() {
				t.row[j] = b.At(i, line)
			} else {
				t.row[j] = 0
			}
		}
		err := t.chain.WriteRow(max7219.RegDigit0+byte(line), t.row)
		switch {
		case err != nil && !t.failing:
			t.failing = true
			logger.Logf(t.log, "scroll: spi: %v", err)
		case err == nil && t.failing:
			t.failing = false
			logger.Log(t.log, "scroll: spi recovered")
		}
	}
}
