package fractal

import (
	"context"
	"io"

	"github.com/gogpu/fractal/internal/parallel"
)

// Stats summarizes a finished render.
type Stats = parallel.Stats

// Render computes the image described by cfg and writes it to w as
// farbfeld. It blocks until the whole image has been written, the context
// is cancelled, or writing fails.
//
// Rows are committed out of order when w is an io.WriteSeeker that can
// actually seek, and strictly in order otherwise (see WithDiscipline).
// The image starts at the current position of w.
func Render(ctx context.Context, cfg *Config, w io.Writer, opts ...RenderOption) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	Logger().Debug("fractal: render settings",
		"kind", cfg.Kind.String(),
		"width", cfg.Width,
		"height", cfg.Height,
		"iterations", cfg.Iterations,
		"bottom_left", cfg.BottomLeft,
		"top_right", cfg.TopRight,
		"julia_centre", cfg.JuliaCentre,
		"smooth", cfg.Smooth,
		"palette", cfg.Palette.Len(),
		"workers", cfg.Workers)

	return parallel.Run(ctx, parallel.Job{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Workers:    cfg.Workers,
		Kernel:     cfg.params(),
		Output:     w,
		Discipline: o.discipline,
		OnCommit:   o.onCommit,
	})
}
