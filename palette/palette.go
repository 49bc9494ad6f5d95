// Package palette provides the cyclic colour tables used to colour
// escape-time fractals.
//
// A Palette is loaded once before rendering and is read-only afterwards,
// so a single instance may be shared by any number of goroutines.
package palette

import (
	"errors"
	"math/rand/v2"

	"github.com/gogpu/fractal/farbfeld"
)

// ErrEmpty is returned when a palette would contain no colours.
var ErrEmpty = errors.New("palette: no colours")

// Palette is a non-empty, ordered, cyclically indexed sequence of colours.
type Palette struct {
	colours []farbfeld.Pixel
}

// New returns a palette holding a copy of colours.
func New(colours []farbfeld.Pixel) (*Palette, error) {
	if len(colours) == 0 {
		return nil, ErrEmpty
	}
	return &Palette{colours: append([]farbfeld.Pixel(nil), colours...)}, nil
}

// Random synthesizes a palette of n opaque colours. The same seed always
// yields the same palette.
func Random(n int, seed uint64) (*Palette, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	colours := make([]farbfeld.Pixel, n)
	for i := range colours {
		colours[i] = farbfeld.Pixel{
			R: uint16(rng.UintN(0xffff)),
			G: uint16(rng.UintN(0xffff)),
			B: uint16(rng.UintN(0xffff)),
			A: 0xffff,
		}
	}
	return &Palette{colours: colours}, nil
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colours)
}

// At returns colour i modulo the palette length.
func (p *Palette) At(i uint64) farbfeld.Pixel {
	return p.colours[i%uint64(len(p.colours))]
}

// Colours returns a copy of the palette entries.
func (p *Palette) Colours() []farbfeld.Pixel {
	return append([]farbfeld.Pixel(nil), p.colours...)
}
