package farbfeld

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Image is a decoded farbfeld image.
type Image struct {
	Width  uint32
	Height uint32
	Pix    []Pixel // row-major, len = Width*Height
}

// At returns the pixel at (x, y). It panics if the coordinates are out of range.
func (m *Image) At(x, y uint32) Pixel {
	return m.Pix[int(y)*int(m.Width)+int(x)]
}

// Row returns the pixels of row y.
func (m *Image) Row(y uint32) []Pixel {
	start := int(y) * int(m.Width)
	return m.Pix[start : start+int(m.Width)]
}

// Decode reads a complete farbfeld image from r.
func Decode(r io.Reader) (*Image, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	var h Header
	if err := h.UnmarshalBinary(raw[:]); err != nil {
		return nil, err
	}

	m := &Image{
		Width:  h.Width,
		Height: h.Height,
		Pix:    make([]Pixel, int(h.Width)*int(h.Height)),
	}
	row := make([]byte, RowSize(h.Width))
	for y := range h.Height {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %v", ErrFormat, y, err)
		}
		px := m.Row(y)
		for i := range px {
			o := i * PixelSize
			px[i] = Pixel{
				R: binary.BigEndian.Uint16(row[o:]),
				G: binary.BigEndian.Uint16(row[o+2:]),
				B: binary.BigEndian.Uint16(row[o+4:]),
				A: binary.BigEndian.Uint16(row[o+6:]),
			}
		}
	}
	return m, nil
}
