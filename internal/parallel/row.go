package parallel

import "github.com/gogpu/fractal/farbfeld"

// Row is one rendered image row.
type Row struct {
	// Y is the row index, 0 at the top of the image.
	Y uint32

	// Pixels holds one pixel per column.
	Pixels []farbfeld.Pixel
}

// Reset clears the pixel data for reuse.
func (r *Row) Reset() {
	clear(r.Pixels)
	r.Y = 0
}

// Width returns the number of pixels in the row.
func (r *Row) Width() uint32 {
	return uint32(len(r.Pixels)) //nolint:gosec // width is a uint32 by construction
}

// ByteSize returns the encoded size of the row in bytes.
func (r *Row) ByteSize() int64 {
	return farbfeld.RowSize(r.Width())
}

// Offset returns the byte offset of the row in an encoded image, relative
// to the start of the header.
func (r *Row) Offset() int64 {
	return farbfeld.Offset(r.Width(), r.Y)
}
