package heartbeat

import (
	"ticker/hal"
	"ticker/tickeros/kernel"
)

// Task blinks the board LED to show the scheduler is alive.
type Task struct {
	led    hal.LED
	period uint64
}

func New(led hal.LED, period uint64) *Task {
	if period == 0 {
		period = 1
	}
	return &Task{led: led, period: period}
}

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil || t.led == nil {
		return
	}
	on := false
	for {
		if !ctx.Sleep(t.period) {
			return
		}
		on = !on
		if on {
			t.led.High()
		} else {
			t.led.Low()
		}
	}
}
