package kernel

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const maxTasks = 32

type TaskID uint8

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrQueueFull
	SendErrStopped
	SendErrInvalid
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrQueueFull:
		return "queue full"
	case SendErrStopped:
		return "kernel stopped"
	case SendErrInvalid:
		return "invalid queue"
	default:
		return "unknown"
	}
}

// Task is a unit of execution. Run is called once on its own goroutine and
// normally loops until the kernel stops.
type Task interface {
	Run(*Context)
}

type taskState struct {
	task Task
	name string
}

// Kernel is a minimal task runner plus a millisecond timebase.
//
// Tasks block only inside kernel primitives (Queue, Semaphore, tick waits),
// so Stop unblocks all of them.
type Kernel struct {
	mu        sync.Mutex
	tasks     [maxTasks]taskState
	taskCount TaskID

	now    uint64
	tickCh chan struct{}

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Pointer[func(PanicInfo)]
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{
		tickCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// AddTask registers a task and starts it.
func (k *Kernel) AddTask(t Task) TaskID {
	k.mu.Lock()
	if k.taskCount >= maxTasks {
		k.mu.Unlock()
		panic(fmt.Sprintf("kernel: more than %d tasks", maxTasks))
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, name: fmt.Sprintf("%T", t)}
	k.mu.Unlock()

	k.wg.Add(1)
	go k.run(id, t)
	return id
}

func (k *Kernel) run(id TaskID, t Task) {
	defer k.wg.Done()
	defer func() {
		if v := recover(); v != nil {
			k.triggerPanic(PanicInfo{TaskID: id, Task: k.taskName(id), Value: v})
		}
	}()
	t.Run(&Context{k: k, taskID: id})
}

func (k *Kernel) taskName(id TaskID) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id >= k.taskCount {
		return ""
	}
	return k.tasks[id].name
}

// TickTo advances the timebase to seq and wakes every tick waiter.
// Older or repeated sequence numbers are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	if seq <= k.now {
		k.mu.Unlock()
		return
	}
	k.now = seq
	ch := k.tickCh
	k.tickCh = make(chan struct{})
	k.mu.Unlock()
	close(ch)
}

// Stop releases every blocked task. It is safe to call more than once.
func (k *Kernel) Stop() {
	k.stopOnce.Do(func() { close(k.done) })
}

// Wait blocks until all tasks have returned.
func (k *Kernel) Wait() {
	k.wg.Wait()
}

// Done is closed once Stop has been called.
func (k *Kernel) Done() <-chan struct{} { return k.done }

func (k *Kernel) nowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.now
}

func (k *Kernel) waitTick(after uint64) (uint64, bool) {
	for {
		k.mu.Lock()
		now := k.now
		ch := k.tickCh
		k.mu.Unlock()
		if now > after {
			return now, true
		}
		select {
		case <-ch:
		case <-k.done:
			return now, false
		}
	}
}
