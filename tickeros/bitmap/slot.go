package bitmap

import "sync/atomic"

type frame struct {
	bm  *Bitmap
	gen uint32
}

// Slot is the single shared bitmap reference between renderer and scroller.
//
// The renderer builds a bitmap completely and then publishes it; after that
// only the scroller mutates it. A superseded bitmap stays valid for a reader
// still holding it and is reclaimed by the garbage collector afterwards.
type Slot struct {
	cur atomic.Pointer[frame]
}

// Publish installs b and returns its generation (starting at 1).
func (s *Slot) Publish(b *Bitmap) uint32 {
	for {
		old := s.cur.Load()
		var gen uint32 = 1
		if old != nil {
			gen = old.gen + 1
		}
		if s.cur.CompareAndSwap(old, &frame{bm: b, gen: gen}) {
			return gen
		}
	}
}

// Load returns the current bitmap and its generation. Both are zero before the
// first Publish.
func (s *Slot) Load() (*Bitmap, uint32) {
	f := s.cur.Load()
	if f == nil {
		return nil, 0
	}
	return f.bm, f.gen
}
