package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/farbfeld"
	"github.com/gogpu/fractal/palette"
)

// =============================================================================
// Flags
// =============================================================================

func TestParseFlags_Defaults(t *testing.T) {
	s, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	want := fractal.DefaultOptions()
	if s.opts != want {
		t.Errorf("opts = %+v, want %+v", s.opts, want)
	}
	if s.mapfile != defaultMapfile || s.outfile != "out.ff" || s.discipline != "auto" {
		t.Errorf("mapfile, outfile, discipline = %q, %q, %q", s.mapfile, s.outfile, s.discipline)
	}
}

func TestParseFlags_ShortAndLong(t *testing.T) {
	short := []string{"-f", "julia", "-t", "3", "-r", "0.5", "-w", "640", "-i", "77",
		"-x", "2.5", "-o", "a.ff", "-s", "-v", "-m", "x.cmap"}
	long := []string{"--fractal_type", "julia", "--threads", "3", "--ratio", "0.5",
		"--width", "640", "--iterations", "77", "--xlen_real", "2.5", "--outfile", "a.ff",
		"--smooth", "--verbose", "--mapfile", "x.cmap"}

	for name, args := range map[string][]string{"short": short, "long": long} {
		t.Run(name, func(t *testing.T) {
			s, err := parseFlags(args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			o := s.opts
			if o.Kind != fractal.Julia || o.Workers != 3 || o.Ratio != 0.5 || o.Width != 640 ||
				o.Iterations != 77 || o.XLen != 2.5 || !o.Smooth {
				t.Errorf("opts = %+v", o)
			}
			if s.outfile != "a.ff" || s.mapfile != "x.cmap" || !s.verbose {
				t.Errorf("outfile, mapfile, verbose = %q, %q, %v", s.outfile, s.mapfile, s.verbose)
			}
		})
	}
}

func TestParseFlags_Points(t *testing.T) {
	s, err := parseFlags([]string{"--image_centre", "-0.5, 0.25", "--julia_centre", "0.285,0.01"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if want := (fractal.Point{X: -0.5, Y: 0.25}); s.opts.Centre != want {
		t.Errorf("Centre = %v, want %v", s.opts.Centre, want)
	}
	if want := (fractal.Point{X: 0.285, Y: 0.01}); s.opts.JuliaCentre != want {
		t.Errorf("JuliaCentre = %v, want %v", s.opts.JuliaCentre, want)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"-f", "newton"}},
		{"point without comma", []string{"--image_centre", "1"}},
		{"point with bad y", []string{"--julia_centre", "1,abc"}},
		{"negative palette", []string{"--random_palette", "-2"}},
		{"positional", []string{"extra"}},
		{"bad width", []string{"-w", "wide"}},
		{"width overflow", []string{"-w", "4294967296"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args, &bytes.Buffer{}); err == nil {
				t.Errorf("parseFlags(%q) succeeded, want error", tt.args)
			}
		})
	}
}

func TestPointFlag_String(t *testing.T) {
	p := fractal.Point{X: -0.8, Y: 0.156}
	if got := (pointFlag{&p}).String(); got != "-0.8,0.156" {
		t.Errorf("String() = %q, want %q", got, "-0.8,0.156")
	}
	if got := (pointFlag{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}
}

// =============================================================================
// Run
// =============================================================================

func smallArgs(out string, extra ...string) []string {
	return append([]string{"-w", "24", "-r", "0.5", "-i", "60", "-t", "3",
		"--random_palette", "16", "-o", out, "--check"}, extra...)
}

func TestRun_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "m.ff")
	var stderr bytes.Buffer
	if err := run(context.Background(), smallArgs(out, "-v"), &stderr); err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := farbfeld.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Width != 24 || img.Height != 12 {
		t.Errorf("image is %dx%d, want 24x12", img.Width, img.Height)
	}

	for _, want := range []string{"iterations", "random (16 colours, seed 1)", "random-access", "wrote 12 rows"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestRun_DisciplinesAndCompression(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.ff")
	if err := run(context.Background(), smallArgs(base), &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want, err := os.ReadFile(base)
	if err != nil {
		t.Fatal(err)
	}

	streamed := filepath.Join(dir, "stream.ff")
	if err := run(context.Background(), smallArgs(streamed, "--discipline", "stream"), &bytes.Buffer{}); err != nil {
		t.Fatalf("run(stream) error = %v", err)
	}
	got, err := os.ReadFile(streamed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("streamed output differs from random-access output")
	}

	// --check decodes the zstd frame, so success means the image round-trips.
	if err := run(context.Background(), smallArgs(filepath.Join(dir, "c.ff.zst")), &bytes.Buffer{}); err != nil {
		t.Fatalf("run(zst) error = %v", err)
	}
}

func TestRun_Mapfile(t *testing.T) {
	dir := t.TempDir()
	mapfile := filepath.Join(dir, "grey.cmap")
	if err := os.WriteFile(mapfile, []byte("; greys\n#000000\n128 128 128\nwhite\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "j.ff")
	args := []string{"-f", "julia", "-w", "16", "-i", "40", "-m", mapfile, "-o", out, "--check"}
	if err := run(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	badMap := filepath.Join(dir, "bad.cmap")
	if err := os.WriteFile(badMap, []byte("#12345\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "x.ff")

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"missing mapfile", []string{"-m", filepath.Join(dir, "none.cmap"), "-o", out}, os.ErrNotExist},
		{"malformed mapfile", []string{"-m", badMap, "-o", out}, palette.ErrSyntax},
		{"zero width", smallArgs(out, "-w", "0"), fractal.ErrInvalidConfig},
		{"unknown discipline", smallArgs(out, "--discipline", "mmap"), fractal.ErrInvalidConfig},
		{"seek into compressed", smallArgs(filepath.Join(dir, "x.ff.zst"), "--discipline", "seek"), fractal.ErrNotSeekable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, &bytes.Buffer{})
			if !errors.Is(err, tt.is) {
				t.Errorf("run() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stderr bytes.Buffer
	if err := run(context.Background(), []string{"-h"}, &stderr); err != nil {
		t.Errorf("run(-h) error = %v, want nil", err)
	}
	if !strings.Contains(stderr.String(), "fractal_type") {
		t.Errorf("usage output missing flags:\n%s", stderr.String())
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "c.ff")
	if err := run(ctx, smallArgs(out), &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("run() error = %v, want context.Canceled", err)
	}
}
