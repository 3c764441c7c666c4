package logger

import (
	"sync"
	"testing"
	"time"

	"ticker/tickeros/kernel"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
	added chan struct{}
}

func (l *captureLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
	l.added <- struct{}{}
}

func (l *captureLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func TestServiceWritesLinesInOrder(t *testing.T) {
	k := kernel.New()
	defer func() {
		k.Stop()
		k.Wait()
	}()

	q := kernel.NewQueue[string](4)
	log := &captureLogger{added: make(chan struct{}, 4)}
	k.AddTask(New(log, q))

	q.TrySend("a")
	q.TrySend("b")
	for i := 0; i < 2; i++ {
		select {
		case <-log.added:
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for line %d", i)
		}
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.lines) != 2 || log.lines[0] != "a" || log.lines[1] != "b" {
		t.Fatalf("lines = %q, want [a b]", log.lines)
	}
}

func TestServiceNilLoggerDrains(t *testing.T) {
	k := kernel.New()
	q := kernel.NewQueue[string](1)
	k.AddTask(New(nil, q))

	q.TrySend("x")
	deadline := time.Now().Add(time.Second)
	for q.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("queue not drained")
		}
		time.Sleep(time.Millisecond)
	}
	k.Stop()
	k.Wait()
}
