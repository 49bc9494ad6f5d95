package parallel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Discipline selects how the writer commits rows.
type Discipline int

const (
	// DisciplineAuto uses random access when the output can seek and
	// streaming otherwise.
	DisciplineAuto Discipline = iota

	// DisciplineStreaming appends rows strictly in index order.
	DisciplineStreaming

	// DisciplineRandomAccess writes each ready row at its offset.
	DisciplineRandomAccess
)

// String returns the name of the discipline.
func (d Discipline) String() string {
	switch d {
	case DisciplineAuto:
		return "auto"
	case DisciplineStreaming:
		return "streaming"
	case DisciplineRandomAccess:
		return "random-access"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// ErrInvalidJob is wrapped by errors returned for malformed jobs.
var ErrInvalidJob = errors.New("parallel: invalid job")

// Job describes one render.
type Job struct {
	Width, Height uint32

	// Workers is the number of renderer goroutines.
	// If 0 or negative, GOMAXPROCS is used.
	Workers int

	Kernel Kernel
	Output io.Writer

	Discipline Discipline

	// OnCommit, if set, is called by the writer goroutine after each row
	// has been written, in commit order.
	OnCommit func(y uint32)
}

// Stats summarizes a finished render.
type Stats struct {
	Discipline Discipline // the discipline actually used
	Rows       int        // rows committed
	Bytes      int64      // bytes written, header included
	Elapsed    time.Duration
}

func (j *Job) validate() error {
	switch {
	case j.Width == 0 || j.Height == 0:
		return fmt.Errorf("%w: empty image %dx%d", ErrInvalidJob, j.Width, j.Height)
	case j.Kernel == nil:
		return fmt.Errorf("%w: nil kernel", ErrInvalidJob)
	case j.Output == nil:
		return fmt.Errorf("%w: nil output", ErrInvalidJob)
	}
	return nil
}

// Run renders the job: it writes the header, starts the renderer
// goroutines and the writer, and waits for all of them. It returns the
// first error; writer failures cancel the renderers.
func Run(ctx context.Context, job Job) (Stats, error) {
	if err := job.validate(); err != nil {
		return Stats{}, err
	}
	workers := job.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ws, base, seekable := Seekable(job.Output)
	discipline := job.Discipline
	switch discipline {
	case DisciplineAuto:
		discipline = DisciplineStreaming
		if seekable {
			discipline = DisciplineRandomAccess
		}
	case DisciplineRandomAccess:
		if !seekable {
			return Stats{}, ErrNotSeekable
		}
	case DisciplineStreaming:
	default:
		return Stats{}, fmt.Errorf("%w: unknown discipline %d", ErrInvalidJob, int(discipline))
	}

	stats := Stats{Discipline: discipline}
	start := time.Now()

	n, err := writeHeader(job.Output, job.Width, job.Height)
	stats.Bytes += int64(n)
	if err != nil {
		return stats, err
	}

	table := NewRowTable(job.Height)
	pool := NewRowPool(job.Width)
	cw := newCommitWriter(table, pool, job.OnCommit)

	log := slogger()
	log.Debug("parallel: render started",
		"width", job.Width, "height", job.Height,
		"workers", workers, "discipline", discipline.String())

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, table.Wake)
	defer stop()

	for id := range workers {
		g.Go(func() error {
			return renderRows(gctx, id, table, pool, job.Kernel)
		})
	}
	g.Go(func() error {
		log.Debug("parallel: writer started")
		var err error
		if discipline == DisciplineRandomAccess {
			err = cw.seekRows(gctx, ws, base)
		} else {
			err = cw.streamRows(gctx, job.Output)
		}
		log.Debug("parallel: writer finished", "rows", cw.rows, "error", err)
		return err
	})

	err = g.Wait()
	stats.Rows = cw.rows
	stats.Bytes += cw.bytes
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, err
	}

	if discipline == DisciplineRandomAccess {
		// Leave the sink positioned after the image, as a streaming write would.
		if _, err := ws.Seek(base+stats.Bytes, io.SeekStart); err != nil {
			return stats, fmt.Errorf("parallel: seeking to end: %w", err)
		}
	}

	log.Info("parallel: render finished",
		"rows", stats.Rows, "bytes", stats.Bytes, "elapsed", stats.Elapsed)
	return stats, nil
}
