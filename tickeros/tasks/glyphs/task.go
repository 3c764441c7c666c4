package glyphs

import (
	"ticker/tickeros/bitmap"
	"ticker/tickeros/client/logger"
	"ticker/tickeros/kernel"
	"ticker/tickeros/proto"
)

// Task renders each received message and publishes it to the scroller.
type Task struct {
	in     *kernel.Queue[proto.Message]
	slot   *bitmap.Slot
	digits int
	log    *kernel.Queue[string]
}

func New(in *kernel.Queue[proto.Message], slot *bitmap.Slot, digits int, log *kernel.Queue[string]) *Task {
	return &Task{in: in, slot: slot, digits: digits, log: log}
}

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil || t.in == nil || t.slot == nil {
		return
	}
	for {
		msg, ok := t.in.Recv(ctx)
		if !ok {
			return
		}
		b := Render(msg, t.digits)
		gen := t.slot.Publish(b)
		logger.Logf(t.log, "glyphs: gen %d, %d rows", gen, b.Rows())
	}
}
