package serial

import "ticker/tickeros/kernel"

// Write queues bytes for transmission on the UART, blocking while the TX queue
// is full. The payload is copied.
func Write(ctx *kernel.Context, tx *kernel.Queue[[]byte], payload []byte) kernel.SendResult {
	if tx == nil {
		return kernel.SendErrInvalid
	}
	if len(payload) == 0 {
		return kernel.SendOK
	}
	return tx.Send(ctx, append([]byte(nil), payload...))
}

// WriteString queues s for transmission.
func WriteString(ctx *kernel.Context, tx *kernel.Queue[[]byte], s string) kernel.SendResult {
	return Write(ctx, tx, []byte(s))
}
