package kernel

// Queue is a bounded FIFO carrying typed values between tasks.
//
// Ownership of a sent value passes to the receiver.
type Queue[T any] struct {
	ch chan T
}

// NewQueue returns a queue holding at most slots values (minimum 1).
func NewQueue[T any](slots int) *Queue[T] {
	if slots < 1 {
		slots = 1
	}
	return &Queue[T]{ch: make(chan T, slots)}
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int { return cap(q.ch) }

// Len returns the number of queued values.
func (q *Queue[T]) Len() int { return len(q.ch) }

// TrySend enqueues v without blocking.
func (q *Queue[T]) TrySend(v T) SendResult {
	select {
	case q.ch <- v:
		return SendOK
	default:
		return SendErrQueueFull
	}
}

// Send enqueues v, blocking while the queue is full.
func (q *Queue[T]) Send(ctx *Context, v T) SendResult {
	select {
	case q.ch <- v:
		return SendOK
	default:
	}
	select {
	case q.ch <- v:
		return SendOK
	case <-ctx.Done():
		return SendErrStopped
	}
}

// TryRecv dequeues one value without blocking.
func (q *Queue[T]) TryRecv() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Recv blocks until a value is available. ok is false if the kernel stopped.
func (q *Queue[T]) Recv(ctx *Context) (v T, ok bool) {
	select {
	case v = <-q.ch:
		return v, true
	default:
	}
	select {
	case v = <-q.ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}
