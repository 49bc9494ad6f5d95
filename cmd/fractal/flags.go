package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/fractal"
)

// pointFlag is a flag.Value for an "x,y" pair.
type pointFlag struct {
	p *fractal.Point
}

func (f pointFlag) String() string {
	if f.p == nil {
		return ""
	}
	return strconv.FormatFloat(f.p.X, 'g', -1, 64) + "," + strconv.FormatFloat(f.p.Y, 'g', -1, 64)
}

func (f pointFlag) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*f.p = p
	return nil
}

func parsePoint(s string) (fractal.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fractal.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fractal.Point{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fractal.Point{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return fractal.Point{X: x, Y: y}, nil
}

// settings is everything the command line selects.
type settings struct {
	opts       fractal.Options
	kind       string
	mapfile    string
	random     int
	seed       uint64
	outfile    string
	discipline string
	verbose    bool
	check      bool
}

const defaultMapfile = "colourmaps/Skydye05.cmap"

// parseFlags parses args. Every option has a short and a long spelling.
func parseFlags(args []string, stderr io.Writer) (*settings, error) {
	s := &settings{opts: fractal.DefaultOptions()}
	fs := flag.NewFlagSet("fractal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		width   uint64
		threads uint
	)
	both := func(short, long string, bind func(name string)) {
		bind(short)
		bind(long)
	}

	both("f", "fractal_type", func(n string) {
		fs.StringVar(&s.kind, n, fractal.Mandelbrot.String(), "fractal `type`: julia or mandelbrot")
	})
	both("t", "threads", func(n string) {
		fs.UintVar(&threads, n, fractal.DefaultWorkers, "number of renderer goroutines")
	})
	both("m", "mapfile", func(n string) {
		fs.StringVar(&s.mapfile, n, defaultMapfile, "colour map `file`")
	})
	fs.IntVar(&s.random, "random_palette", 0, "synthesize `n` random colours instead of loading a map")
	fs.Uint64Var(&s.seed, "seed", 1, "seed for -random_palette")
	both("r", "ratio", func(n string) {
		fs.Float64Var(&s.opts.Ratio, n, fractal.DefaultRatio, "height/width ratio")
	})
	both("w", "width", func(n string) {
		fs.Uint64Var(&width, n, fractal.DefaultWidth, "image width in pixels")
	})
	both("i", "iterations", func(n string) {
		fs.Uint64Var(&s.opts.Iterations, n, fractal.DefaultIterations, "iteration cap")
	})
	both("x", "xlen_real", func(n string) {
		fs.Float64Var(&s.opts.XLen, n, fractal.DefaultXLen, "viewport width on the real axis")
	})
	fs.Var(pointFlag{&s.opts.Centre}, "image_centre", "viewport centre as `x,y`")
	fs.Var(pointFlag{&s.opts.JuliaCentre}, "julia_centre", "Julia constant as `x,y`")
	both("o", "outfile", func(n string) {
		fs.StringVar(&s.outfile, n, "out.ff", "output `file`, - for stdout, .zst to compress")
	})
	both("s", "smooth", func(n string) {
		fs.BoolVar(&s.opts.Smooth, n, false, "smooth colouring")
	})
	both("v", "verbose", func(n string) {
		fs.BoolVar(&s.verbose, n, false, "print settings and log progress")
	})
	fs.StringVar(&s.discipline, "discipline", "auto", "commit `order`: auto, stream or seek")
	fs.BoolVar(&s.check, "check", false, "decode the output after writing and verify it")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	kind, err := fractal.ParseKind(s.kind)
	if err != nil {
		return nil, err
	}
	s.opts.Kind = kind
	if width > math.MaxUint32 {
		return nil, fmt.Errorf("width %d out of range", width)
	}
	s.opts.Width = uint32(width)  //nolint:gosec // range checked above
	s.opts.Workers = int(threads) //nolint:gosec // flag values are small
	if s.random < 0 {
		return nil, fmt.Errorf("random_palette must not be negative, got %d", s.random)
	}
	return s, nil
}
