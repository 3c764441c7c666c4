package rxring

import (
	"bytes"
	"strings"
	"testing"

	"ticker/tickeros/proto"
)

const window = 4

func TestFramerPadsShortLines(t *testing.T) {
	for delta := 2; delta <= window; delta++ {
		raw := strings.Repeat("x", delta-1) + "\n"

		r := New(DefaultSize)
		f := NewFramer(r, window)
		r.Write([]byte(raw))

		msg := f.Next()
		want := strings.TrimSuffix(raw, "\n")
		want += strings.Repeat(" ", window-len(want))
		if got := msg.String(); got != want {
			t.Fatalf("delta %d: Next() = %q, want %q", delta, got, want)
		}
		if msg.Default {
			t.Fatalf("delta %d: unexpected default message", delta)
		}
	}
}

func TestFramerScenarioHI(t *testing.T) {
	r := New(DefaultSize)
	f := NewFramer(r, window)
	r.Write([]byte("HI\n"))

	if got := f.Next().String(); got != "HI  " {
		t.Fatalf("Next() = %q, want %q", got, "HI  ")
	}
}

func TestFramerLongLineIsNotPadded(t *testing.T) {
	r := New(DefaultSize)
	f := NewFramer(r, window)
	r.Write([]byte("HELLO WORLD\n"))

	if got := f.Next().String(); got != "HELLO WORLD" {
		t.Fatalf("Next() = %q, want %q", got, "HELLO WORLD")
	}
}

func TestFramerDegenerateYieldsDefault(t *testing.T) {
	for _, raw := range []string{"", "\n"} {
		r := New(DefaultSize)
		f := NewFramer(r, window)
		r.Write([]byte(raw))

		msg := f.Next()
		if !msg.Default {
			t.Fatalf("input %q: expected default message", raw)
		}
		if got := msg.String(); got != proto.DefaultString {
			t.Fatalf("input %q: Next() = %q, want %q", raw, got, proto.DefaultString)
		}
	}
}

func TestFramerWrapAround(t *testing.T) {
	const size = 32
	line := []byte("ABCDEFGHIJ\n")

	for start := 0; start < size; start++ {
		r := New(size)
		r.Write(bytes.Repeat([]byte{'.'}, start))
		f := NewFramer(r, window)
		r.Write(line)

		got := f.Next().Payload
		if !bytes.Equal(got, line[:len(line)-1]) {
			t.Fatalf("start %d: Next() = %q, want %q", start, got, line[:len(line)-1])
		}
		if f.Last() != r.Offset() {
			t.Fatalf("start %d: Last() = %d, want %d", start, f.Last(), r.Offset())
		}
	}
}

func TestFramerConsecutiveLines(t *testing.T) {
	r := New(16)
	f := NewFramer(r, window)

	lines := []string{"one\n", "second\n", "x\n", "\n", "wrapping!\n"}
	want := []string{"one ", "second", "x   ", proto.DefaultString, "wrapping!"}
	for i, line := range lines {
		r.Write([]byte(line))
		if got := f.Next().String(); got != want[i] {
			t.Fatalf("line %d: Next() = %q, want %q", i, got, want[i])
		}
	}
}

func TestFramerNoNewBytes(t *testing.T) {
	r := New(DefaultSize)
	r.Write([]byte("abc\n"))
	f := NewFramer(r, window)

	if msg := f.Next(); !msg.Default {
		t.Fatalf("Next() = %q with nothing new, want default", msg.String())
	}
}
