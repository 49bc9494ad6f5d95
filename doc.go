// Package fractal renders escape-time fractals to farbfeld images.
//
// # Overview
//
// fractal computes a Mandelbrot or Julia set image on the CPU with a pool of
// renderer goroutines and streams the result to any io.Writer through a
// single writer goroutine. Rows are computed in whatever order the workers
// finish them and committed either strictly in order (any writer, including
// pipes and compressors) or out of order at their final offsets (seekable
// writers such as regular files).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fractal"
//	    "github.com/gogpu/fractal/palette"
//	)
//
//	pal, _ := palette.Load("colourmaps/Skydye05.cmap")
//	opts := fractal.DefaultOptions()
//	opts.Palette = pal
//	cfg, _ := fractal.NewConfig(opts)
//
//	out, _ := fractal.OpenOutput("out.ff")
//	defer out.Close()
//	_, err := fractal.Render(context.Background(), cfg, out.Writer())
//
// # Architecture
//
// The library is organized into:
//   - Public API: Config, Options, Render, Output
//   - farbfeld: the image format (header, row encoding, decoder)
//   - palette: cyclic colour tables loaded from files or synthesized
//   - Internal: kernel (per-pixel colouring), parallel (row pipeline)
//
// # Coordinate System
//
// Pixel (0, 0) is the top-left corner of the image and maps to the
// top-left corner of the viewport: real part BottomLeft.X, imaginary part
// TopRight.Y. X increases right, Y increases down.
//
// # Determinism
//
// The output depends only on the Config. Worker count and commit
// discipline never change a single byte.
package fractal

// Version is the current version of the library.
const Version = "0.1.0"
