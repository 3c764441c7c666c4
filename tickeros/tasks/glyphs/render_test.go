package glyphs

import (
	"bytes"
	"testing"
	"time"

	"ticker/tickeros/bitmap"
	"ticker/tickeros/fonts/max7219font"
	"ticker/tickeros/kernel"
	"ticker/tickeros/proto"
)

func msg(s string) proto.Message { return proto.Message{Payload: []byte(s)} }

func TestRenderHIPadded(t *testing.T) {
	b := Render(msg("HI  "), 4)
	if b.Rows() != 4 {
		t.Fatalf("Rows() = %d, want 4", b.Rows())
	}
	want := [][]byte{
		max7219font.Glyph('H'),
		max7219font.Glyph('I'),
		max7219font.Glyph(' '),
		max7219font.Glyph(' '),
	}
	for i, w := range want {
		if !bytes.Equal(b.Row(i), w) {
			t.Fatalf("row %d = % x, want % x", i, b.Row(i), w)
		}
	}
}

func TestRenderShortMessageGetsBlankRows(t *testing.T) {
	b := Render(msg("A"), 4)
	if b.Rows() != 4 {
		t.Fatalf("Rows() = %d, want 4", b.Rows())
	}
	blank := make([]byte, bitmap.Lines)
	for i := 1; i < 4; i++ {
		if !bytes.Equal(b.Row(i), blank) {
			t.Fatalf("row %d = % x, want blank", i, b.Row(i))
		}
	}
}

func TestRenderLongMessage(t *testing.T) {
	b := Render(msg("HELLO WORLD"), 4)
	if b.Rows() != 11 {
		t.Fatalf("Rows() = %d, want 11", b.Rows())
	}
	if !bytes.Equal(b.Row(10), max7219font.Glyph('D')) {
		t.Fatalf("last row = % x, want glyph D", b.Row(10))
	}
}

func TestRenderOutOfRangeUsesGlyphZero(t *testing.T) {
	b := Render(proto.Message{Payload: []byte{0x01, 0x7F, 0xC8, '\r'}}, 4)
	blank := max7219font.Glyph(' ')
	for i := 0; i < 4; i++ {
		if !bytes.Equal(b.Row(i), blank) {
			t.Fatalf("row %d = % x, want glyph 0", i, b.Row(i))
		}
	}
}

func TestRenderDoesNotAliasFont(t *testing.T) {
	b := Render(msg("H"), 1)
	b.Shift()
	if !bytes.Equal(max7219font.Glyph('H'), []byte{0x33, 0x33, 0x33, 0x3F, 0x33, 0x33, 0x33, 0x00}) {
		t.Fatalf("font table modified through the bitmap")
	}
}

func TestTaskPublishesEachMessage(t *testing.T) {
	k := kernel.New()
	in := kernel.NewQueue[proto.Message](1)
	var slot bitmap.Slot
	k.AddTask(New(in, &slot, 4, nil))
	defer func() {
		k.Stop()
		k.Wait()
	}()

	waitGen := func(want uint32) *bitmap.Bitmap {
		t.Helper()
		deadline := time.Now().Add(time.Second)
		for {
			b, gen := slot.Load()
			if gen == want {
				return b
			}
			if time.Now().After(deadline) {
				t.Fatalf("generation = %d, want %d", gen, want)
			}
			time.Sleep(time.Millisecond)
		}
	}

	in.TrySend(proto.DefaultMessage())
	if b := waitGen(1); b.Rows() != len(proto.DefaultString) {
		t.Fatalf("default rows = %d, want %d", b.Rows(), len(proto.DefaultString))
	}
	in.TrySend(msg("HI  "))
	if b := waitGen(2); b.Rows() != 4 {
		t.Fatalf("rows = %d, want 4", b.Rows())
	}
}
