package max7219

import (
	"bytes"
	"errors"
	"testing"
)

type event struct {
	latch string
	data  []byte
}

type recorder struct {
	events []event
	err    error
}

func (r *recorder) Tx(w, _ []byte) error {
	r.events = append(r.events, event{data: append([]byte(nil), w...)})
	return r.err
}

func (r *recorder) Transfer(b byte) (byte, error) {
	r.events = append(r.events, event{data: []byte{b}})
	return 0, r.err
}

func (r *recorder) High() { r.events = append(r.events, event{latch: "high"}) }
func (r *recorder) Low()  { r.events = append(r.events, event{latch: "low"}) }

func (r *recorder) txs() [][]byte {
	var out [][]byte
	for _, ev := range r.events {
		if ev.data != nil {
			out = append(out, ev.data)
		}
	}
	return out
}

func TestWriteRowIsOneLatchedTransaction(t *testing.T) {
	r := &recorder{}
	c := New(r, r, 4)

	if err := c.WriteRow(RegDigit0+2, []byte{0xA1, 0xB2, 0xC3, 0xD4}); err != nil {
		t.Fatalf("WriteRow() = %v", err)
	}
	if len(r.events) != 3 {
		t.Fatalf("events = %d, want low/tx/high", len(r.events))
	}
	if r.events[0].latch != "low" || r.events[2].latch != "high" {
		t.Fatalf("latch order = %q/%q, want low/high", r.events[0].latch, r.events[2].latch)
	}
	want := []byte{0x03, 0xA1, 0x03, 0xB2, 0x03, 0xC3, 0x03, 0xD4}
	if !bytes.Equal(r.events[1].data, want) {
		t.Fatalf("tx = % x, want % x", r.events[1].data, want)
	}
}

func TestWriteRowLengthMismatch(t *testing.T) {
	r := &recorder{}
	c := New(r, nil, 4)
	if err := c.WriteRow(RegDigit0, []byte{1, 2}); err == nil {
		t.Fatalf("WriteRow() with short row = nil, want error")
	}
	if len(r.events) != 0 {
		t.Fatalf("bus touched on invalid row")
	}
}

func TestConfigureSequence(t *testing.T) {
	r := &recorder{}
	c := New(r, nil, 2)
	if err := c.Configure(Config{Intensity: 0x20}); err != nil {
		t.Fatalf("Configure() = %v", err)
	}

	txs := r.txs()
	if len(txs) != 6+Lines {
		t.Fatalf("transactions = %d, want %d", len(txs), 6+Lines)
	}
	wantRegs := []struct{ reg, data byte }{
		{RegDisplayTest, 0},
		{RegShutdown, 0},
		{RegDecodeMode, 0},
		{RegIntensity, 0x0F},
		{RegScanLimit, 7},
		{RegShutdown, 1},
	}
	for i, w := range wantRegs {
		want := []byte{w.reg, w.data, w.reg, w.data}
		if !bytes.Equal(txs[i], want) {
			t.Fatalf("tx %d = % x, want % x", i, txs[i], want)
		}
	}
	for line := 0; line < Lines; line++ {
		reg := RegDigit0 + byte(line)
		want := []byte{reg, 0, reg, 0}
		if !bytes.Equal(txs[6+line], want) {
			t.Fatalf("clear tx %d = % x, want % x", line, txs[6+line], want)
		}
	}
}

func TestDisplayTest(t *testing.T) {
	r := &recorder{}
	c := New(r, nil, 1)
	_ = c.DisplayTest(true)
	_ = c.DisplayTest(false)
	txs := r.txs()
	if !bytes.Equal(txs[0], []byte{RegDisplayTest, 1}) || !bytes.Equal(txs[1], []byte{RegDisplayTest, 0}) {
		t.Fatalf("DisplayTest txs = % x", txs)
	}
}

func TestBusErrorIsReturned(t *testing.T) {
	busErr := errors.New("spi down")
	r := &recorder{err: busErr}
	c := New(r, r, 4)
	if err := c.Configure(Config{}); !errors.Is(err, busErr) {
		t.Fatalf("Configure() = %v, want %v", err, busErr)
	}
	if err := c.Clear(); !errors.Is(err, busErr) {
		t.Fatalf("Clear() = %v, want %v", err, busErr)
	}
	// CS must be released even when the bus fails.
	if last := r.events[len(r.events)-1]; last.latch != "high" {
		t.Fatalf("last event = %+v, want latch high", last)
	}
}

func TestNilChainLen(t *testing.T) {
	var c *Chain
	if n := c.Len(); n != 0 {
		t.Fatalf("Len()=%d, want 0", n)
	}
}
