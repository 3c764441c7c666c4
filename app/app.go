package app

import (
	"errors"
	"sync/atomic"

	"ticker/hal"
	"ticker/internal/buildinfo"
	"ticker/tickeros/bitmap"
	"ticker/tickeros/client/logger"
	"ticker/tickeros/kernel"
	"ticker/tickeros/max7219"
	"ticker/tickeros/proto"
	"ticker/tickeros/rxring"
	logsvc "ticker/tickeros/services/logger"
	serialsvc "ticker/tickeros/services/serial"
	"ticker/tickeros/tasks/glyphs"
	"ticker/tickeros/tasks/heartbeat"
	"ticker/tickeros/tasks/linerx"
	"ticker/tickeros/tasks/scroll"
)

// ErrHalted is returned by the step function after a task panicked.
var ErrHalted = errors.New("ticker halted")

// Config holds the firmware tunables. Durations are in kernel ticks (ms).
type Config struct {
	// Digits is the number of chained MAX7219 modules (the visible window).
	Digits int
	// RingSize is the UART receive ring size in bytes.
	RingSize int

	ScrollTicks    uint64
	HeartbeatTicks uint64
	// IdleTicks is the silence after a burst of bytes that ends a line.
	IdleTicks     uint64
	SelfTestTicks uint64
	Intensity     uint8
}

// DefaultConfig returns the settings of the reference board.
func DefaultConfig() Config {
	return Config{
		Digits:         4,
		RingSize:       rxring.DefaultSize,
		ScrollTicks:    60,
		HeartbeatTicks: 1000,
		IdleTicks:      2,
		SelfTestTicks:  2000,
		Intensity:      0x01,
	}
}

// system owns every piece of shared pipeline state.
type system struct {
	k *kernel.Kernel

	ring *rxring.Ring
	idle *kernel.Semaphore
	msgs *kernel.Queue[proto.Message]
	tx   *kernel.Queue[[]byte]
	logq *kernel.Queue[string]
	slot *bitmap.Slot

	chain *max7219.Chain

	halted atomic.Bool
}

// New initializes and starts the firmware with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the firmware and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

// NewWithConfig starts the firmware and returns the host step function.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return func() error {
		if s.halted.Load() {
			return ErrHalted
		}
		return nil
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	def := DefaultConfig()
	if cfg.Digits <= 0 {
		cfg.Digits = def.Digits
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = def.RingSize
	}

	bootDiagStart(h)
	bootDiagSetStep("kernel")

	s := &system{
		k:    kernel.New(),
		ring: rxring.New(cfg.RingSize),
		idle: kernel.NewSemaphore(false),
		msgs: kernel.NewQueue[proto.Message](1),
		tx:   kernel.NewQueue[[]byte](4),
		logq: kernel.NewQueue[string](32),
		slot: &bitmap.Slot{},
	}
	installPanicHandler(h, s)

	bootDiagSetStep("services")
	s.k.AddTask(logsvc.New(h.Logger(), s.logq))
	s.k.AddTask(serialsvc.New(h.Serial(), s.ring, s.idle, s.tx, s.logq, serialsvc.Config{IdleTicks: cfg.IdleTicks}))

	bootDiagSetStep("pipeline")
	s.k.AddTask(linerx.New(rxring.NewFramer(s.ring, cfg.Digits), s.idle, s.msgs, s.tx, s.logq))
	s.k.AddTask(glyphs.New(s.msgs, s.slot, cfg.Digits, s.logq))
	if port := h.Matrix(); port != nil && port.Bus() != nil {
		var cs max7219.Latch
		if l := port.ChipSelect(); l != nil {
			cs = l
		}
		s.chain = max7219.New(port.Bus(), cs, cfg.Digits)
		s.k.AddTask(scroll.New(s.chain, s.slot, scroll.Config{
			Digits:        cfg.Digits,
			ScrollTicks:   cfg.ScrollTicks,
			SelfTestTicks: cfg.SelfTestTicks,
			Intensity:     cfg.Intensity,
		}, s.logq))
	} else {
		logger.Log(s.logq, "ticker: no matrix port, display disabled")
	}

	if led := h.LED(); led != nil {
		s.k.AddTask(heartbeat.New(led, cfg.HeartbeatTicks))
	}

	drawBootCaption(h, "ticker "+buildinfo.Short())
	logger.Logf(s.logq, "ticker %s: %d modules, scroll %d ms", buildinfo.Short(), cfg.Digits, cfg.ScrollTicks)

	bootDiagSetStep("ticks")
	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					s.k.TickTo(seq)
				}
			}()
		}
	}
	bootDiagSetStep("running")

	return s
}
