// Package farbfeld encodes and decodes the farbfeld image format.
//
// A farbfeld file is a 16-byte header followed by row-major pixel data:
//
//	bytes 0-7    "farbfeld"
//	bytes 8-11   width, big-endian uint32
//	bytes 12-15  height, big-endian uint32
//	bytes 16...  width*height pixels, each R, G, B, A as big-endian uint16
//
// The package exposes the row-level primitives the renderer needs to commit
// rows independently and in any order: [RowSize], [Offset] and [PutRow].
package farbfeld

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
)

// Magic is the literal tag at the start of every farbfeld file.
const Magic = "farbfeld"

const (
	// HeaderSize is the size of the encoded header in bytes.
	HeaderSize = 16

	// PixelSize is the size of one encoded pixel in bytes.
	PixelSize = 8
)

// ErrFormat is returned when decoding data that is not farbfeld.
var ErrFormat = errors.New("farbfeld: invalid format")

// Pixel is a single non-premultiplied RGBA pixel with 16 bits per channel.
type Pixel struct {
	R, G, B, A uint16
}

// Opaque is opaque black, the colour of points inside the set.
var Opaque = Pixel{A: 0xffff}

// NRGBA64 converts p to the standard library colour type.
func (p Pixel) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: p.R, G: p.G, B: p.B, A: p.A}
}

// FromColor converts any colour to a Pixel.
func FromColor(c color.Color) Pixel {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Header is the fixed-size farbfeld header.
type Header struct {
	Width  uint32
	Height uint32
}

// MarshalBinary encodes the header into its 16-byte wire form.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic)
	binary.BigEndian.PutUint32(buf[8:], h.Width)
	binary.BigEndian.PutUint32(buf[12:], h.Height)
	return buf, nil
}

// UnmarshalBinary decodes a 16-byte header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: short header (%d bytes)", ErrFormat, len(data))
	}
	if string(data[:8]) != Magic {
		return fmt.Errorf("%w: bad magic %q", ErrFormat, data[:8])
	}
	h.Width = binary.BigEndian.Uint32(data[8:])
	h.Height = binary.BigEndian.Uint32(data[12:])
	return nil
}

// ImageSize returns the total encoded size of the image in bytes,
// header included.
func (h Header) ImageSize() int64 {
	return HeaderSize + int64(h.Height)*RowSize(h.Width)
}

// RowSize returns the encoded size of one row of the given width.
func RowSize(width uint32) int64 {
	return int64(width) * PixelSize
}

// Offset returns the byte offset of row y in a file of the given width.
func Offset(width, y uint32) int64 {
	return HeaderSize + int64(y)*RowSize(width)
}

// PutRow encodes pixels into dst, which must hold at least
// len(pixels)*PixelSize bytes. It returns the number of bytes written.
func PutRow(dst []byte, pixels []Pixel) int {
	if len(pixels) == 0 {
		return 0
	}
	_ = dst[len(pixels)*PixelSize-1] // bounds check hint
	for i, p := range pixels {
		o := i * PixelSize
		binary.BigEndian.PutUint16(dst[o:], p.R)
		binary.BigEndian.PutUint16(dst[o+2:], p.G)
		binary.BigEndian.PutUint16(dst[o+4:], p.B)
		binary.BigEndian.PutUint16(dst[o+6:], p.A)
	}
	return len(pixels) * PixelSize
}
