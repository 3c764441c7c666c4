package logger

import (
	"ticker/hal"
	"ticker/tickeros/kernel"
)

// Service drains queued log lines to the HAL logger.
type Service struct {
	log hal.Logger
	q   *kernel.Queue[string]
}

func New(log hal.Logger, q *kernel.Queue[string]) *Service {
	return &Service{log: log, q: q}
}

func (s *Service) Run(ctx *kernel.Context) {
	for {
		line, ok := s.q.Recv(ctx)
		if !ok {
			return
		}
		if s.log == nil {
			continue
		}
		s.log.WriteLineString(line)
	}
}
