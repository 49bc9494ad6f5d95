package parallel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/fractal/farbfeld"
)

// ErrNotSeekable is returned when random-access commit is requested for an
// output that cannot seek.
var ErrNotSeekable = errors.New("parallel: output is not seekable")

// Seekable reports whether w supports random positioning. It returns the
// writer as an io.WriteSeeker together with its current position, which
// becomes the start of the image.
func Seekable(w io.Writer) (io.WriteSeeker, int64, bool) {
	ws, ok := w.(io.WriteSeeker)
	if !ok {
		return nil, 0, false
	}
	// Pipes and terminals implement Seek but fail on it.
	pos, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, false
	}
	return ws, pos, true
}

// commitWriter is shared by both disciplines: it encodes rows into one
// scratch buffer and hands committed buffers back to the pool.
type commitWriter struct {
	table    *RowTable
	pool     *RowPool
	buf      []byte
	onCommit func(y uint32)

	rows  int
	bytes int64
}

func newCommitWriter(t *RowTable, p *RowPool, onCommit func(uint32)) *commitWriter {
	return &commitWriter{
		table:    t,
		pool:     p,
		buf:      make([]byte, farbfeld.RowSize(p.Width())),
		onCommit: onCommit,
	}
}

// commit writes row to w and retires it: Created -> Written, buffer released.
func (c *commitWriter) commit(w io.Writer, row *Row) error {
	n := farbfeld.PutRow(c.buf, row.Pixels)
	if _, err := w.Write(c.buf[:n]); err != nil {
		return fmt.Errorf("parallel: writing row %d: %w", row.Y, err)
	}

	y := row.Y
	c.table.MarkWritten(y)
	c.pool.Put(row)

	c.rows++
	c.bytes += int64(n)
	if c.onCommit != nil {
		c.onCommit(y)
	}
	return nil
}

// streamRows commits rows strictly in index order with sequential writes.
func (c *commitWriter) streamRows(ctx context.Context, w io.Writer) error {
	h := c.table.Height()
	for next := uint32(0); next < h; next++ {
		row, err := c.table.WaitCreated(ctx, next)
		if err != nil {
			return err
		}
		if err := c.commit(w, row); err != nil {
			return err
		}
	}
	return nil
}

// seekRows commits any ready row at its final offset. base is the sink
// position of the header.
func (c *commitWriter) seekRows(ctx context.Context, w io.WriteSeeker, base int64) error {
	h := c.table.Height()
	for first := uint32(0); first < h; first = c.table.NextUnwritten(first) {
		row, err := c.table.TakeAny(ctx, first)
		if err != nil {
			return err
		}
		if _, err := w.Seek(base+row.Offset(), io.SeekStart); err != nil {
			return fmt.Errorf("parallel: seeking to row %d: %w", row.Y, err)
		}
		if err := c.commit(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader emits the farbfeld header at the current position of w.
func writeHeader(w io.Writer, width, height uint32) (int, error) {
	hdr, _ := farbfeld.Header{Width: width, Height: height}.MarshalBinary()
	n, err := w.Write(hdr)
	if err != nil {
		return n, fmt.Errorf("parallel: writing header: %w", err)
	}
	return n, nil
}
