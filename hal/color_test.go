package hal

import (
	"image/color"
	"testing"
)

func TestRGB565RoundTripExtremes(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want uint16
	}{
		{color.RGBA{}, 0x0000},
		{color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, 0xFFFF},
		{color.RGBA{R: 0xFF}, 0xF800},
		{color.RGBA{G: 0xFF}, 0x07E0},
		{color.RGBA{B: 0xFF}, 0x001F},
	}
	for _, tt := range tests {
		got := RGB565(tt.c)
		if got != tt.want {
			t.Fatalf("RGB565(%v)=%#04x, want %#04x", tt.c, got, tt.want)
		}
		r, g, b := rgb888From565(got)
		if r != tt.c.R || g != tt.c.G || b != tt.c.B {
			t.Fatalf("rgb888From565(%#04x)=%d,%d,%d, want %v", got, r, g, b, tt.c)
		}
	}
}

func TestLEDColorsBrightenWithIntensity(t *testing.T) {
	off, dim := ledColors(0)
	_, bright := ledColors(0x0F)
	if off == dim {
		t.Fatalf("lit and unlit dots share a colour")
	}
	if bright>>11 <= dim>>11 {
		t.Fatalf("red channel did not increase: dim=%#04x bright=%#04x", dim, bright)
	}
}
