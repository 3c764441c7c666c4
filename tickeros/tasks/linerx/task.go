package linerx

import (
	"ticker/tickeros/client/logger"
	serialclient "ticker/tickeros/client/serial"
	"ticker/tickeros/kernel"
	"ticker/tickeros/proto"
	"ticker/tickeros/rxring"
)

// Task turns idle-line events into framed messages for the renderer.
type Task struct {
	framer *rxring.Framer
	idle   *kernel.Semaphore
	out    *kernel.Queue[proto.Message]
	tx     *kernel.Queue[[]byte]
	log    *kernel.Queue[string]
}

// New returns a line receiver task. tx and log may be nil.
func New(framer *rxring.Framer, idle *kernel.Semaphore, out *kernel.Queue[proto.Message], tx *kernel.Queue[[]byte], log *kernel.Queue[string]) *Task {
	return &Task{framer: framer, idle: idle, out: out, tx: tx, log: log}
}

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil || t.framer == nil || t.idle == nil || t.out == nil {
		return
	}
	if t.tx != nil {
		_ = serialclient.WriteString(ctx, t.tx, proto.WelcomeLine)
		_ = serialclient.WriteString(ctx, t.tx, proto.NoteLine)
	}
	if res := t.out.Send(ctx, proto.DefaultMessage()); res != kernel.SendOK {
		return
	}

	for {
		if !t.idle.Wait(ctx) {
			return
		}
		msg := t.framer.Next()
		// Blocks while the renderer still holds the previous message.
		if res := t.out.Send(ctx, msg); res != kernel.SendOK {
			return
		}
		if msg.Default {
			logger.Log(t.log, "linerx: empty line, default message")
			continue
		}
		logger.Logf(t.log, "linerx: message of %d bytes", msg.Len())
	}
}
