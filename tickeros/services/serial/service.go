package serial

import (
	"errors"
	"io"
	"sync"

	"ticker/hal"
	"ticker/tickeros/client/logger"
	"ticker/tickeros/kernel"
	"ticker/tickeros/rxring"
)

const readChunk = 64

// Config tunes idle-line detection.
type Config struct {
	// IdleTicks is how long the line must stay silent after the last byte
	// before the idle semaphore is released. Minimum 1.
	IdleTicks uint64
}

// Service moves UART bytes into the receive ring and raises the idle-line
// signal once a burst of bytes is followed by silence. It also drains the TX
// queue to the UART.
type Service struct {
	serial hal.Serial
	ring   *rxring.Ring
	idle   *kernel.Semaphore
	tx     *kernel.Queue[[]byte]
	log    *kernel.Queue[string]
	cfg    Config

	mu      sync.Mutex
	lastRx  uint64
	pending bool
}

// New creates a serial service.
func New(serial hal.Serial, ring *rxring.Ring, idle *kernel.Semaphore, tx *kernel.Queue[[]byte], log *kernel.Queue[string], cfg Config) *Service {
	if cfg.IdleTicks == 0 {
		cfg.IdleTicks = 1
	}
	return &Service{serial: serial, ring: ring, idle: idle, tx: tx, log: log, cfg: cfg}
}

// Run starts the receive side and then transmits queued writes until the
// kernel stops.
func (s *Service) Run(ctx *kernel.Context) {
	if s.serial != nil {
		go s.readLoop(ctx)
	}
	go s.watchIdle(ctx)

	for {
		p, ok := s.tx.Recv(ctx)
		if !ok {
			return
		}
		if s.serial == nil {
			continue
		}
		for len(p) > 0 {
			n, err := s.serial.Write(p)
			if err != nil {
				logger.Logf(s.log, "serial: tx: %v", err)
				break
			}
			p = p[n:]
		}
	}
}

func (s *Service) readLoop(ctx *kernel.Context) {
	buf := make([]byte, readChunk)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := s.serial.Read(buf)
		if n > 0 {
			s.received(ctx.NowTick(), buf[:n])
		}
		switch {
		case err == nil:
			if n == 0 && !ctx.BlockOnTick() {
				return
			}
		case errors.Is(err, io.EOF):
			logger.Log(s.log, "serial: rx closed")
			return
		case errors.Is(err, hal.ErrNotImplemented):
			return
		default:
			// Line noise, framing or overrun: the ring keeps what arrived.
			logger.Logf(s.log, "serial: rx: %v", err)
			if !ctx.BlockOnTick() {
				return
			}
		}
	}
}

func (s *Service) received(now uint64, p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.ring.Write(p)
	s.lastRx = now
	s.pending = true
}

// idleDue reports whether the line has gone idle after a burst and clears
// the pending burst if so. A now older than the last byte is never idle.
func (s *Service) idleDue(now uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || now < s.lastRx || now-s.lastRx < s.cfg.IdleTicks {
		return false
	}
	s.pending = false
	return true
}

func (s *Service) watchIdle(ctx *kernel.Context) {
	now := ctx.NowTick()
	for {
		var ok bool
		now, ok = ctx.WaitTick(now)
		if !ok {
			return
		}
		if s.idleDue(now) {
			s.idle.Release()
		}
	}
}
