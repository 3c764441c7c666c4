package scroll

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"ticker/tickeros/bitmap"
	"ticker/tickeros/kernel"
	"ticker/tickeros/max7219"
	"ticker/tickeros/proto"
	"ticker/tickeros/tasks/glyphs"
)

type recordingBus struct {
	mu  sync.Mutex
	txs [][]byte
	err error
}

func (r *recordingBus) Tx(w, _ []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, append([]byte(nil), w...))
	return r.err
}

func (r *recordingBus) Transfer(b byte) (byte, error) { return 0, r.Tx([]byte{b}, nil) }

func (r *recordingBus) snapshot() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.txs...)
}

// frame returns the eight row transactions expected for b.
func frame(b *bitmap.Bitmap) [][]byte {
	out := make([][]byte, bitmap.Lines)
	for line := 0; line < bitmap.Lines; line++ {
		reg := max7219.RegDigit0 + byte(line)
		for j := 3; j >= 0; j-- {
			out[line] = append(out[line], reg, b.At(j, line))
		}
	}
	return out
}

func waitTxs(t *testing.T, bus *recordingBus, n int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		txs := bus.snapshot()
		if len(txs) >= n {
			return txs
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d transactions, want %d", len(txs), n)
		}
		time.Sleep(time.Millisecond)
	}
}

const configureTxs = 6 + max7219.Lines

func TestScenarioHIPaintsThenShifts(t *testing.T) {
	bus := &recordingBus{}
	chain := max7219.New(bus, nil, 4)

	b := glyphs.Render(proto.Message{Payload: []byte("HI  ")}, 4)
	want1 := frame(b)
	shifted := b.Clone()
	shifted.Shift()
	want2 := frame(shifted)

	var slot bitmap.Slot
	slot.Publish(b)

	k := kernel.New()
	k.AddTask(New(chain, &slot, Config{Digits: 4, ScrollTicks: 60}, nil))
	defer func() {
		k.Stop()
		k.Wait()
	}()

	txs := waitTxs(t, bus, configureTxs+8)
	for i, w := range want1 {
		if got := txs[configureTxs+i]; !bytes.Equal(got, w) {
			t.Fatalf("tick 1 line %d = % x, want % x", i, got, w)
		}
	}

	time.Sleep(10 * time.Millisecond)
	if n := len(bus.snapshot()); n != configureTxs+8 {
		t.Fatalf("painted again before the cadence elapsed: %d transactions", n)
	}
	k.TickTo(60)

	txs = waitTxs(t, bus, configureTxs+16)
	for i, w := range want2 {
		if got := txs[configureTxs+8+i]; !bytes.Equal(got, w) {
			t.Fatalf("tick 2 line %d = % x, want % x", i, got, w)
		}
	}
}

func TestSelfTestRunsBeforeScroll(t *testing.T) {
	bus := &recordingBus{}
	chain := max7219.New(bus, nil, 4)
	var slot bitmap.Slot
	slot.Publish(bitmap.New(4))

	k := kernel.New()
	k.AddTask(New(chain, &slot, Config{Digits: 4, ScrollTicks: 1, SelfTestTicks: 5}, nil))
	defer func() {
		k.Stop()
		k.Wait()
	}()

	txs := waitTxs(t, bus, configureTxs+1)
	on := []byte{max7219.RegDisplayTest, 1, max7219.RegDisplayTest, 1, max7219.RegDisplayTest, 1, max7219.RegDisplayTest, 1}
	if !bytes.Equal(txs[configureTxs], on) {
		t.Fatalf("tx = % x, want display test on", txs[configureTxs])
	}
	time.Sleep(10 * time.Millisecond)
	if n := len(bus.snapshot()); n != configureTxs+1 {
		t.Fatalf("transactions during self test = %d, want %d", n, configureTxs+1)
	}

	k.TickTo(5)
	txs = waitTxs(t, bus, configureTxs+2)
	off := []byte{max7219.RegDisplayTest, 0, max7219.RegDisplayTest, 0, max7219.RegDisplayTest, 0, max7219.RegDisplayTest, 0}
	if !bytes.Equal(txs[configureTxs+1], off) {
		t.Fatalf("tx = % x, want display test off", txs[configureTxs+1])
	}
}

func TestStepWithoutBitmapIsNoop(t *testing.T) {
	bus := &recordingBus{}
	var slot bitmap.Slot
	task := New(max7219.New(bus, nil, 4), &slot, Config{}, nil)
	task.Step()
	if n := len(bus.snapshot()); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestStepPicksUpNewGeneration(t *testing.T) {
	bus := &recordingBus{}
	var slot bitmap.Slot
	task := New(max7219.New(bus, nil, 4), &slot, Config{Digits: 4}, nil)

	first := glyphs.Render(proto.Message{Payload: []byte("AAAA")}, 4)
	slot.Publish(first)
	task.Step()

	second := glyphs.Render(proto.Message{Payload: []byte("BBBB")}, 4)
	want := frame(second)
	slot.Publish(second)
	task.Step()

	txs := bus.snapshot()
	for i, w := range want {
		if !bytes.Equal(txs[8+i], w) {
			t.Fatalf("line %d = % x, want % x", i, txs[8+i], w)
		}
	}
}

func TestSPIErrorLoggedOnce(t *testing.T) {
	bus := &recordingBus{err: errors.New("bus fault")}
	var slot bitmap.Slot
	slot.Publish(bitmap.New(4))
	log := kernel.NewQueue[string](8)
	task := New(max7219.New(bus, nil, 4), &slot, Config{Digits: 4}, log)

	task.Step()
	task.Step()

	var lines []string
	for {
		l, ok := log.TryRecv()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	var spi int
	for _, l := range lines {
		if l == "scroll: spi: bus fault" {
			spi++
		}
	}
	if spi != 1 {
		t.Fatalf("spi error logged %d times, want 1 (%q)", spi, lines)
	}
}

func TestNewWithoutChain(t *testing.T) {
	var slot bitmap.Slot
	task := New(nil, &slot, Config{}, nil)

	k := kernel.New()
	k.AddTask(task)
	k.Stop()
	k.Wait()
}

func TestDisplayTestErrorIsLogged(t *testing.T) {
	bus := &recordingBus{err: errors.New("bus fault")}
	var slot bitmap.Slot
	log := kernel.NewQueue[string](32)

	k := kernel.New()
	k.AddTask(New(max7219.New(bus, nil, 4), &slot, Config{Digits: 4, ScrollTicks: 1, SelfTestTicks: 1}, log))
	defer func() {
		k.Stop()
		k.Wait()
	}()

	deadline := time.Now().Add(time.Second)
	for {
		if l, ok := log.TryRecv(); ok && l == "scroll: display test: bus fault" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("display test error not logged")
		}
		time.Sleep(time.Millisecond)
	}
}
