package fractal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/fractal/internal/kernel"
	"github.com/gogpu/fractal/palette"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate
// and NewConfig.
var ErrInvalidConfig = errors.New("fractal: invalid config")

// Kind selects the fractal to render.
type Kind = kernel.Kind

const (
	// Julia renders the Julia set of Config.JuliaCentre.
	Julia = kernel.Julia

	// Mandelbrot renders the Mandelbrot set.
	Mandelbrot = kernel.Mandelbrot
)

// ParseKind parses "julia" or "mandelbrot", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "julia":
		return Julia, nil
	case "mandelbrot":
		return Mandelbrot, nil
	default:
		return 0, fmt.Errorf("%w: unsupported fractal type %q", ErrInvalidConfig, s)
	}
}

// Point is a point in the complex plane, X real and Y imaginary.
type Point struct {
	X, Y float64
}

// Config is the complete, immutable description of a render.
// It is safe to share between goroutines once built.
type Config struct {
	Width, Height uint32
	Iterations    uint64

	// BottomLeft and TopRight are the viewport corners.
	BottomLeft, TopRight Point

	Kind        Kind
	JuliaCentre Point

	// Smooth enables continuous colouring between palette entries.
	Smooth bool

	// InteriorCheck skips iteration for Mandelbrot points known to be in
	// the set. It never changes the output.
	InteriorCheck bool

	Palette *palette.Palette

	// Workers is the number of renderer goroutines.
	Workers int
}

// Validate reports whether the config can be rendered.
func (c *Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Palette == nil || c.Palette.Len() == 0:
		return fmt.Errorf("%w: no palette", ErrInvalidConfig)
	case !finite(c.BottomLeft) || !finite(c.TopRight) || !finite(c.JuliaCentre):
		return fmt.Errorf("%w: non-finite coordinates", ErrInvalidConfig)
	case c.BottomLeft.X >= c.TopRight.X || c.BottomLeft.Y >= c.TopRight.Y:
		return fmt.Errorf("%w: empty viewport %v..%v", ErrInvalidConfig, c.BottomLeft, c.TopRight)
	case c.Kind != Julia && c.Kind != Mandelbrot:
		return fmt.Errorf("%w: unknown fractal kind %d", ErrInvalidConfig, int(c.Kind))
	}
	return nil
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// params converts the config into kernel parameters.
func (c *Config) params() *kernel.Params {
	return &kernel.Params{
		Width:         c.Width,
		Height:        c.Height,
		Iterations:    c.Iterations,
		MinX:          c.BottomLeft.X,
		MinY:          c.BottomLeft.Y,
		MaxX:          c.TopRight.X,
		MaxY:          c.TopRight.Y,
		Kind:          c.Kind,
		CX:            c.JuliaCentre.X,
		CY:            c.JuliaCentre.Y,
		Smooth:        c.Smooth,
		InteriorCheck: c.InteriorCheck,
		Palette:       c.Palette,
	}
}

// Default values for Options.
const (
	DefaultWorkers    = 24
	DefaultRatio      = 1.0
	DefaultWidth      = 4000
	DefaultIterations = 1000
	DefaultXLen       = 4.0
)

// DefaultJuliaCentre is the default Julia constant.
var DefaultJuliaCentre = Point{X: -0.8, Y: 0.156}

// Options is the user-facing description of a render, from which NewConfig
// derives the image height and the viewport.
type Options struct {
	Kind    Kind
	Workers int
	Palette *palette.Palette

	// Ratio is height/width, both in pixels and in the complex plane.
	Ratio float64

	Width      uint32
	Iterations uint64

	// XLen is the width of the viewport on the real axis.
	XLen float64

	// Centre is the centre of the viewport.
	Centre Point

	JuliaCentre Point
	Smooth      bool
}

// DefaultOptions returns the default Options. The palette is left nil.
func DefaultOptions() Options {
	return Options{
		Kind:        Mandelbrot,
		Workers:     DefaultWorkers,
		Ratio:       DefaultRatio,
		Width:       DefaultWidth,
		Iterations:  DefaultIterations,
		XLen:        DefaultXLen,
		JuliaCentre: DefaultJuliaCentre,
	}
}

// NewConfig derives a validated Config from o.
// The height is Width*Ratio truncated, and the viewport spans XLen by
// XLen*Ratio around Centre.
func NewConfig(o Options) (*Config, error) {
	if !(o.Ratio > 0) || math.IsInf(o.Ratio, 0) {
		return nil, fmt.Errorf("%w: ratio must be positive, got %v", ErrInvalidConfig, o.Ratio)
	}
	if !(o.XLen > 0) || math.IsInf(o.XLen, 0) {
		return nil, fmt.Errorf("%w: xlen must be positive, got %v", ErrInvalidConfig, o.XLen)
	}
	h := float64(o.Width) * o.Ratio
	if h > math.MaxUint32 {
		return nil, fmt.Errorf("%w: height %v overflows", ErrInvalidConfig, h)
	}

	ylen := o.XLen * o.Ratio
	c := &Config{
		Width:      o.Width,
		Height:     uint32(h),
		Iterations: o.Iterations,
		BottomLeft: Point{
			X: o.Centre.X - o.XLen/2,
			Y: o.Centre.Y - ylen/2,
		},
		TopRight: Point{
			X: o.Centre.X + o.XLen/2,
			Y: o.Centre.Y + ylen/2,
		},
		Kind:          o.Kind,
		JuliaCentre:   o.JuliaCentre,
		Smooth:        o.Smooth,
		InteriorCheck: true,
		Palette:       o.Palette,
		Workers:       o.Workers,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
