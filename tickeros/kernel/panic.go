package kernel

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	TaskID TaskID
	Task   string
	Value  any
	Stack  []byte
}

// InPanicMode reports whether a task of k has panicked.
func (k *Kernel) InPanicMode() bool {
	return k.panicActive.Load()
}

// SetPanicHandler installs the handler for task panics of k.
//
// The handler runs at most once, for the first panic, on the panicking task's
// goroutine. It must not panic. Later panics are recovered and dropped.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panicHandler.Store(&fn)
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panicOnce.Do(func() {
		k.panicActive.Store(true)
		info.Stack = captureStack()
		if fn := k.panicHandler.Load(); fn != nil && *fn != nil {
			(*fn)(info)
		}
	})
}
