package parallel

import (
	"sync"

	"github.com/gogpu/fractal/farbfeld"
)

// RowPool provides reuse of Row buffers via sync.Pool.
//
// Workers take buffers with Get and the writer returns them with Put once
// a row has been committed, so steady-state rendering allocates roughly one
// buffer per goroutine instead of one per row.
//
// Thread safety: RowPool is safe for concurrent use.
type RowPool struct {
	width uint32
	pool  sync.Pool
}

// NewRowPool creates a pool of rows of the given width.
func NewRowPool(width uint32) *RowPool {
	p := &RowPool{width: width}
	p.pool.New = func() any {
		return &Row{Pixels: make([]farbfeld.Pixel, width)}
	}
	return p
}

// Get retrieves a row buffer for row y.
func (p *RowPool) Get(y uint32) *Row {
	row := p.pool.Get().(*Row)
	row.Y = y
	return row
}

// Put returns a row to the pool. Rows of a different width and nil rows are
// dropped.
func (p *RowPool) Put(row *Row) {
	if row == nil || row.Width() != p.width {
		return
	}
	row.Reset()
	p.pool.Put(row)
}

// Width returns the width of the rows in the pool.
func (p *RowPool) Width() uint32 {
	return p.width
}
