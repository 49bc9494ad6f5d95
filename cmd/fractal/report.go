package main

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
)

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// printSettings writes the effective render settings as an aligned table.
func printSettings(w io.Writer, s *settings, cfg *fractal.Config, d fractal.Discipline) {
	p := printer()
	paletteSource := s.mapfile
	if s.random > 0 {
		paletteSource = p.Sprintf("random (%d colours, seed %d)", s.random, s.seed)
	}

	p.Fprintf(w, "%-14s %v\n", "fractal", cfg.Kind)
	p.Fprintf(w, "%-14s %d\n", "threads", cfg.Workers)
	p.Fprintf(w, "%-14s %s (%d colours)\n", "palette", paletteSource, cfg.Palette.Len())
	p.Fprintf(w, "%-14s %d x %d\n", "image", cfg.Width, cfg.Height)
	p.Fprintf(w, "%-14s %d\n", "iterations", cfg.Iterations)
	p.Fprintf(w, "%-14s (%g, %g) .. (%g, %g)\n", "viewport",
		cfg.BottomLeft.X, cfg.BottomLeft.Y, cfg.TopRight.X, cfg.TopRight.Y)
	if cfg.Kind == fractal.Julia {
		p.Fprintf(w, "%-14s (%g, %g)\n", "julia centre", cfg.JuliaCentre.X, cfg.JuliaCentre.Y)
	}
	p.Fprintf(w, "%-14s %t\n", "smooth", cfg.Smooth)
	p.Fprintf(w, "%-14s %s\n", "outfile", s.outfile)
	p.Fprintf(w, "%-14s %v\n", "discipline", d)
}

// printStats writes the render summary.
func printStats(w io.Writer, st fractal.Stats) {
	printer().Fprintf(w, "wrote %d rows, %d bytes in %v (%v)\n",
		st.Rows, st.Bytes, st.Elapsed.Round(time.Millisecond), st.Discipline)
}
