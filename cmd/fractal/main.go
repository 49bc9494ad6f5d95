// Command fractal renders a Mandelbrot or Julia set to a farbfeld image.
//
// Usage:
//
//	fractal -f julia -w 1920 -r 0.5625 -m colourmaps/Skydye05.cmap -o julia.ff
//	fractal -random_palette 64 -s -o - | ff2png > mandelbrot.png
//	fractal -o mandelbrot.ff.zst -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/palette"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	s, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer fractal.SetLogger(nil)

	pal, err := loadPalette(s)
	if err != nil {
		return err
	}
	s.opts.Palette = pal

	cfg, err := fractal.NewConfig(s.opts)
	if err != nil {
		return err
	}
	discipline, err := fractal.ParseDiscipline(s.discipline)
	if err != nil {
		return err
	}

	if s.verbose {
		printSettings(stderr, s, cfg, discipline)
	}

	out, err := fractal.OpenOutput(s.outfile)
	if err != nil {
		return err
	}

	stats, err := fractal.Render(ctx, cfg, out.Writer(), fractal.WithDiscipline(discipline))
	if err != nil {
		if cerr := out.Close(); cerr != nil {
			fractal.Logger().Warn("fractal: closing output after failed render", "error", cerr)
		}
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if s.verbose {
		printStats(stderr, stats)
	}

	if s.check && s.outfile != fractal.StdoutPath {
		return checkOutput(s.outfile, cfg)
	}
	return nil
}

func loadPalette(s *settings) (*palette.Palette, error) {
	if s.random > 0 {
		return palette.Random(s.random, s.seed)
	}
	return palette.Load(s.mapfile)
}
