//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"ticker/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

func bootDiagSetStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
}

// bootDiagStart repeats the current boot step on the logger and the UART, so
// a board that hangs during bring-up still reports where it stopped.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			line := "bootdiag: " + step
			if l != nil {
				l.WriteLineString(line)
			}
			_, _ = machine.UART0.Write([]byte(line + "\r\n"))

			if step == "running" {
				return
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
