package parallel

import (
	"context"
	"fmt"
	"sync"
)

// SlotState is the commit state of one row.
type SlotState uint8

const (
	// Empty means no worker has published the row yet.
	Empty SlotState = iota

	// Created means the row buffer is in the table, not yet committed.
	Created

	// Written means the row has been committed and its buffer released.
	Written
)

// String returns the name of the state.
func (s SlotState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Created:
		return "Created"
	case Written:
		return "Written"
	default:
		return fmt.Sprintf("SlotState(%d)", uint8(s))
	}
}

// ProtocolError describes an impossible row-state transition. It is raised
// with panic and signals a bug in the pipeline, never a recoverable
// condition.
type ProtocolError struct {
	Op    string    // the operation that observed the violation
	Y     uint32    // the row index
	State SlotState // the state found in the slot
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("parallel: row protocol violation: %s row %d in state %s", e.Op, e.Y, e.State)
}

func violation(op string, y uint32, s SlotState) {
	panic(&ProtocolError{Op: op, Y: y, State: s})
}

// slot is the per-row entry of a RowTable. The row is non-nil only while the
// slot is Created and the writer has not taken it.
type slot struct {
	state SlotState
	row   *Row
}

// RowTable is the shared state between renderer workers and the writer:
// the row cursor, one slot per row and the count of pending rows.
//
// All slot access goes through the methods below, which hold the table
// mutex. The writer parks on a condition variable instead of polling.
//
// Thread safety: RowTable is safe for concurrent use. Take, WaitCreated,
// MarkWritten and NextUnwritten are meant for a single writer goroutine.
type RowTable struct {
	alloc *Allocator

	mu      sync.Mutex
	ready   *sync.Cond // signalled on Publish and on wake
	slots   []slot
	pending int // Created but not yet Written
}

// NewRowTable returns a table for rows [0, height), all Empty.
func NewRowTable(height uint32) *RowTable {
	t := &RowTable{
		alloc: NewAllocator(height),
		slots: make([]slot, height),
	}
	t.ready = sync.NewCond(&t.mu)
	return t
}

// Height returns the number of rows in the table.
func (t *RowTable) Height() uint32 {
	return t.alloc.Height()
}

// Claim hands out the next unrendered row index. See [Allocator.Claim].
func (t *RowTable) Claim() (uint32, bool) {
	return t.alloc.Claim()
}

// Cursor returns the number of rows claimed so far.
func (t *RowTable) Cursor() uint32 {
	return t.alloc.Cursor()
}

// Publish stores a rendered row and moves its slot Empty -> Created.
// The caller must not touch row afterwards.
func (t *RowTable) Publish(row *Row) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.slots[row.Y]
	if s.state != Empty {
		violation("publish", row.Y, s.state)
	}
	s.state = Created
	s.row = row
	t.pending++

	t.ready.Signal()
}

// TryTake returns the row in slot y if it is Created and not yet taken.
// Ownership of the buffer passes to the caller, the slot stays Created
// until MarkWritten.
func (t *RowTable) TryTake(y uint32) (*Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.take(y)
}

func (t *RowTable) take(y uint32) (*Row, bool) {
	s := &t.slots[y]
	if s.state != Created || s.row == nil {
		return nil, false
	}
	row := s.row
	s.row = nil
	return row, true
}

// WaitCreated blocks until slot y is Created, then takes its row.
// Finding the slot already Written, or Created with its row taken, is a
// protocol violation. It returns ctx.Err() if the context is cancelled
// while waiting; the context must be wired to [RowTable.Wake].
func (t *RowTable) WaitCreated(ctx context.Context, y uint32) (*Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		switch s := t.slots[y]; s.state {
		case Created:
			row, ok := t.take(y)
			if !ok {
				violation("take", y, s.state)
			}
			return row, nil
		case Empty:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t.ready.Wait()
		default:
			violation("wait", y, s.state)
		}
	}
}

// TakeAny blocks until some row in [from, cursor) is Created, then takes
// the lowest such row. It returns ctx.Err() if the context is cancelled
// while waiting; the context must be wired to [RowTable.Wake].
func (t *RowTable) TakeAny(ctx context.Context, from uint32) (*Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		if t.pending > 0 {
			limit := min(t.alloc.Cursor(), t.Height())
			for y := from; y < limit; y++ {
				if row, ok := t.take(y); ok {
					return row, nil
				}
			}
			// Every published row has an index below the cursor and at or
			// above the lowest unwritten row, so a pending row that cannot be
			// found has already been taken.
			violation("take-any", from, Created)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.ready.Wait()
	}
}

// MarkWritten moves slot y Created -> Written after its row was committed.
func (t *RowTable) MarkWritten(y uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.slots[y]
	if s.state != Created {
		violation("mark-written", y, s.state)
	}
	s.state = Written
	s.row = nil
	t.pending--
}

// NextUnwritten returns the lowest row index at or above from that is not
// Written, or Height if every such row is Written.
func (t *RowTable) NextUnwritten(from uint32) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.Height()
	for from < h && t.slots[from].state == Written {
		from++
	}
	return from
}

// State returns the state of slot y.
func (t *RowTable) State(y uint32) SlotState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[y].state
}

// Pending returns the number of Created rows not yet Written.
func (t *RowTable) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Wake wakes any goroutine parked in WaitCreated or TakeAny so that it can
// re-check its context.
func (t *RowTable) Wake() {
	t.mu.Lock()
	t.ready.Broadcast()
	t.mu.Unlock()
}
