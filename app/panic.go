package app

import (
	"fmt"
	"image/color"
	"strings"

	"ticker/hal"
	"ticker/tickeros/fonts/max7219font"
	"ticker/tickeros/kernel"

	"tinygo.org/x/tinyfont"
)

// installPanicHandler halts the system on the first task panic: every task is
// stopped and the panic is reported on the logger and, if present, the display.
func installPanicHandler(h hal.HAL, s *system) {
	s.k.SetPanicHandler(func(info kernel.PanicInfo) {
		s.halted.Store(true)
		s.k.Stop()

		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("Ticker Panic: task=%d (%s) panic=%v", info.TaskID, info.Task, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}
		if led := h.LED(); led != nil {
			led.High()
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}

		fb.ClearRGB(255, 255, 255)

		lines := []string{
			"Ticker Panic:",
			fmt.Sprintf("task: %d %s", info.TaskID, info.Task),
			fmt.Sprintf("panic: %v", info.Value),
		}
		if len(info.Stack) > 0 {
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				lines = append(lines, strings.TrimSpace(line))
			}
		} else {
			lines = append(lines, "stack: unavailable")
		}

		drawLines(fbDisplay{fb: fb}, lines, color.RGBA{A: 255})
		_ = fb.Present()
	})
}

// drawLines writes lines top to bottom, wrapping long ones, until the display
// is full.
func drawLines(d fbDisplay, lines []string, fg color.RGBA) {
	w, h := d.Size()
	cols := int(w) / 8
	if cols <= 0 {
		return
	}
	y := int16(max7219font.Height - 1)
	for _, line := range lines {
		for len(line) > 0 {
			if y >= h {
				return
			}
			chunk := line
			if len(chunk) > cols {
				chunk = chunk[:cols]
			}
			tinyfont.WriteLine(d, max7219font.Font, 0, y, chunk, fg)
			y += max7219font.Height + 1
			line = strings.TrimLeft(line[len(chunk):], " ")
		}
	}
}
