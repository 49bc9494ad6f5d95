package fractal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// StdoutPath is the output path that selects the process's standard output.
const StdoutPath = "-"

// zstdSuffix selects zstd-framed output.
const zstdSuffix = ".zst"

// Output is an opened render destination.
//
// Regular files are seekable and get out-of-order commit. Standard output
// and zstd-compressed files can only be appended to and get the streaming
// discipline.
type Output struct {
	path string
	w    io.Writer
	file *os.File
	enc  *zstd.Encoder
}

// OpenOutput opens path for writing. "-" selects standard output, a ".zst"
// suffix wraps the file in a zstd encoder, anything else creates or
// truncates a regular file.
func OpenOutput(path string) (*Output, error) {
	if path == StdoutPath {
		// Hide Seek so that a redirected stdout still streams.
		return &Output{path: path, w: struct{ io.Writer }{os.Stdout}}, nil
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("fractal: opening output: %w", err)
	}

	if !strings.HasSuffix(path, zstdSuffix) {
		return &Output{path: path, w: f, file: f}, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fractal: creating zstd encoder: %w", err)
	}
	return &Output{path: path, w: enc, file: f, enc: enc}, nil
}

// Writer returns the writer to pass to Render.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Path returns the path the output was opened with.
func (o *Output) Path() string {
	return o.path
}

// Compressed reports whether the output is zstd-framed.
func (o *Output) Compressed() bool {
	return o.enc != nil
}

// Close flushes the encoder, if any, and closes the file.
// Standard output is left open.
func (o *Output) Close() error {
	var errs []error
	if o.enc != nil {
		if err := o.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("fractal: flushing zstd stream: %w", err))
		}
	}
	if o.file != nil {
		if err := o.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("fractal: closing output: %w", err))
		}
	}
	return errors.Join(errs...)
}
