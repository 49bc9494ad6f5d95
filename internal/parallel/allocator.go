package parallel

import "sync/atomic"

// Allocator hands out row indices 0, 1, ..., height-1, each exactly once.
//
// Thread safety: Allocator is safe for concurrent use.
type Allocator struct {
	height uint32
	cursor atomic.Uint32 // next unclaimed row, never exceeds height
}

// NewAllocator returns an allocator for rows [0, height).
func NewAllocator(height uint32) *Allocator {
	return &Allocator{height: height}
}

// Claim returns the next unclaimed row index. It returns false once every
// row has been handed out; the cursor never moves past height.
func (a *Allocator) Claim() (uint32, bool) {
	for {
		y := a.cursor.Load()
		if y >= a.height {
			return 0, false
		}
		if a.cursor.CompareAndSwap(y, y+1) {
			return y, true
		}
	}
}

// Cursor returns the number of rows claimed so far.
func (a *Allocator) Cursor() uint32 {
	return a.cursor.Load()
}

// Height returns the number of rows the allocator hands out.
func (a *Allocator) Height() uint32 {
	return a.height
}
