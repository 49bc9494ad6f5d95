package fractal

import (
	"fmt"
	"strings"

	"github.com/gogpu/fractal/internal/parallel"
)

// Discipline selects how rows are committed to the output.
type Discipline = parallel.Discipline

const (
	// DisciplineAuto commits out of order when the output can seek and in
	// order otherwise.
	DisciplineAuto = parallel.DisciplineAuto

	// DisciplineStreaming appends rows strictly in index order.
	DisciplineStreaming = parallel.DisciplineStreaming

	// DisciplineRandomAccess writes every row at its offset as soon as it
	// is ready. The output must be an io.WriteSeeker.
	DisciplineRandomAccess = parallel.DisciplineRandomAccess
)

// ParseDiscipline parses a discipline name. "stream" and "seek" are
// accepted as short forms of "streaming" and "random-access".
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return DisciplineAuto, nil
	case "stream", "streaming":
		return DisciplineStreaming, nil
	case "seek", "random-access":
		return DisciplineRandomAccess, nil
	default:
		return DisciplineAuto, fmt.Errorf("%w: unknown discipline %q", ErrInvalidConfig, s)
	}
}

// ErrNotSeekable is returned by Render when DisciplineRandomAccess is
// requested for an output that cannot seek.
var ErrNotSeekable = parallel.ErrNotSeekable

// RenderOption configures a call to Render.
// Use functional options to customize Render behavior.
//
// Example:
//
//	// Default: random access for files, streaming for pipes
//	fractal.Render(ctx, cfg, w)
//
//	// Force in-order commit even for a file
//	fractal.Render(ctx, cfg, w, fractal.WithDiscipline(fractal.DisciplineStreaming))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for Render.
type renderOptions struct {
	discipline Discipline
	onCommit   func(y uint32)
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		discipline: DisciplineAuto,
	}
}

// WithDiscipline forces a commit discipline.
func WithDiscipline(d Discipline) RenderOption {
	return func(o *renderOptions) {
		o.discipline = d
	}
}

// WithCommitHook registers fn to be called from the writer goroutine after
// each row has been written. Rows arrive in commit order, which is index
// order only for the streaming discipline. fn must be fast; it stalls the
// writer.
func WithCommitHook(fn func(y uint32)) RenderOption {
	return func(o *renderOptions) {
		o.onCommit = fn
	}
}
