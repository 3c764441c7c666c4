package kernel

// Context provides task-local access to kernel operations.
type Context struct {
	k      *Kernel
	taskID TaskID
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Done is closed when the kernel stops. A nil-kernel context is never done.
func (c *Context) Done() <-chan struct{} {
	if c == nil || c.k == nil {
		return nil
	}
	return c.k.done
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c == nil || c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the new tick.
// ok is false if the kernel stopped first.
func (c *Context) WaitTick(after uint64) (now uint64, ok bool) {
	if c == nil || c.k == nil {
		return 0, false
	}
	return c.k.waitTick(after)
}

// BlockOnTick blocks the task until the next tick.
func (c *Context) BlockOnTick() bool {
	if c == nil || c.k == nil {
		return false
	}
	_, ok := c.k.waitTick(c.k.nowTick())
	return ok
}

// Sleep blocks for at least dt ticks. It returns false if the kernel stopped.
func (c *Context) Sleep(dt uint64) bool {
	if c == nil || c.k == nil {
		return false
	}
	now := c.k.nowTick()
	due := now + dt
	for now < due {
		var ok bool
		now, ok = c.k.waitTick(now)
		if !ok {
			return false
		}
	}
	return true
}
