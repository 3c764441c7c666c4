package kernel

// Semaphore is a binary semaphore.
//
// Release never blocks, so it can be called from interrupt-like contexts
// (driver goroutines, timer callbacks). Releases while already available
// collapse into one.
type Semaphore struct {
	ch chan struct{}
}

// NewSemaphore creates a semaphore, initially available or not.
func NewSemaphore(available bool) *Semaphore {
	s := &Semaphore{ch: make(chan struct{}, 1)}
	if available {
		s.ch <- struct{}{}
	}
	return s
}

// Release makes the semaphore available.
func (s *Semaphore) Release() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// TryWait takes the semaphore if it is available.
func (s *Semaphore) TryWait() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the semaphore is available and takes it.
// It returns false if the kernel stopped first.
func (s *Semaphore) Wait(ctx *Context) bool {
	select {
	case <-s.ch:
		return true
	case <-ctx.Done():
		return false
	}
}
