package parallel

import (
	"context"

	"github.com/gogpu/fractal/farbfeld"
)

// Kernel colours a single pixel. Implementations must be safe for
// concurrent use; fractal uses the pure kernel.Params.
type Kernel interface {
	Colour(x, y uint32) farbfeld.Pixel
}

// KernelFunc adapts a function to the Kernel interface.
type KernelFunc func(x, y uint32) farbfeld.Pixel

// Colour calls f(x, y).
func (f KernelFunc) Colour(x, y uint32) farbfeld.Pixel { return f(x, y) }

// renderRows is the main loop of one renderer goroutine. It claims rows
// until the table is exhausted, colours each one and publishes it.
// Cancellation is checked between rows.
func renderRows(ctx context.Context, id int, t *RowTable, pool *RowPool, k Kernel) error {
	log := slogger().With("worker", id)
	log.Debug("parallel: worker started")

	rendered := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Debug("parallel: worker cancelled", "rows", rendered)
			return err
		}

		y, ok := t.Claim()
		if !ok {
			break
		}

		row := pool.Get(y)
		for x := range row.Pixels {
			row.Pixels[x] = k.Colour(uint32(x), y) //nolint:gosec // x < width, a uint32
		}
		t.Publish(row)
		rendered++
	}

	log.Debug("parallel: worker finished", "rows", rendered)
	return nil
}
