package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/farbfeld"
)

// checkOutput decodes the file at path and compares its size with cfg.
func checkOutput(path string, cfg *fractal.Config) error {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	img, err := farbfeld.Decode(r)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if img.Width != cfg.Width || img.Height != cfg.Height {
		return fmt.Errorf("check: image is %dx%d, want %dx%d", img.Width, img.Height, cfg.Width, cfg.Height)
	}
	fractal.Logger().Debug("fractal: output verified", "path", path, "width", img.Width, "height", img.Height)
	return nil
}
