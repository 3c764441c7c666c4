package logger

import (
	"fmt"

	"ticker/tickeros/kernel"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it drops the line when the queue is full.
func Log(q *kernel.Queue[string], line string) kernel.SendResult {
	if q == nil {
		return kernel.SendErrInvalid
	}
	return q.TrySend(line)
}

// Logf formats and sends a log line.
func Logf(q *kernel.Queue[string], format string, args ...any) kernel.SendResult {
	if q == nil {
		return kernel.SendErrInvalid
	}
	return q.TrySend(fmt.Sprintf(format, args...))
}
