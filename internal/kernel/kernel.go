// Package kernel implements the per-pixel escape-time colouring function.
//
// Params is immutable once built and Colour has no side effects, so a single
// Params value may be shared by every renderer goroutine without locking.
package kernel

import (
	"math"

	"github.com/gogpu/fractal/farbfeld"
	"github.com/gogpu/fractal/palette"
)

// Kind selects the recurrence constant.
type Kind int

const (
	// Julia adds a fixed constant for the whole image.
	Julia Kind = iota

	// Mandelbrot adds the mapped pixel coordinate.
	Mandelbrot
)

// String returns the lowercase name of the fractal kind.
func (k Kind) String() string {
	switch k {
	case Julia:
		return "julia"
	case Mandelbrot:
		return "mandelbrot"
	default:
		return "unknown"
	}
}

// escapeRadius2 is the squared escape radius.
const escapeRadius2 = 4.0

// smoothIterations is the number of extra iterations taken after escape
// when smoothing is enabled.
const smoothIterations = 3

// Params is everything the kernel needs to colour a pixel.
type Params struct {
	Width, Height uint32
	Iterations    uint64

	// Viewport corners in the complex plane.
	MinX, MinY float64 // bottom left
	MaxX, MaxY float64 // top right

	Kind   Kind
	CX, CY float64 // Julia constant

	Smooth bool

	// InteriorCheck short-circuits Mandelbrot points inside the main
	// cardioid and the period-2 bulb.
	InteriorCheck bool

	Palette *palette.Palette
}

// distribute maps i in [0, n) linearly onto [a, b).
func distribute(i, n uint32, a, b float64) float64 {
	return a + float64(i)*(b-a)/float64(n)
}

// Point returns the complex-plane coordinate of pixel (x, y).
// Row 0 is the top edge of the viewport.
func (p *Params) Point(x, y uint32) (re, im float64) {
	return distribute(x, p.Width, p.MinX, p.MaxX), distribute(y, p.Height, p.MaxY, p.MinY)
}

// Colour returns the colour of pixel (x, y).
func (p *Params) Colour(x, y uint32) farbfeld.Pixel {
	c, d := p.Point(x, y)

	kx, ky := p.CX, p.CY
	if p.Kind == Mandelbrot {
		kx, ky = c, d
	}

	if p.Kind == Mandelbrot && p.InteriorCheck && interior(c, d) {
		return farbfeld.Opaque
	}

	a, b := c, d
	a2, b2 := a*a, b*b
	var i uint64
	for i < p.Iterations && a2+b2 < escapeRadius2 {
		i++
		b = (a+a)*b + ky
		a = a2 - b2 + kx
		a2, b2 = a*a, b*b
	}

	if i == p.Iterations {
		return farbfeld.Opaque
	}
	if !p.Smooth {
		return p.Palette.At(i)
	}

	for range smoothIterations {
		i++
		b = (a+a)*b + ky
		a = a2 - b2 + kx
		a2, b2 = a*a, b*b
	}
	mu := float64(i) + 1 - math.Log(math.Log(math.Sqrt(a2+b2)))/math.Ln2
	if mu < 0 || math.IsNaN(mu) {
		mu = 0
	}
	return p.blend(mu)
}

// blend interpolates between the two palette entries either side of mu.
func (p *Params) blend(mu float64) farbfeld.Pixel {
	idx := uint64(mu)
	t2 := mu - float64(idx)
	t1 := 1 - t2

	c1 := p.Palette.At(idx)
	c2 := p.Palette.At(idx + 1)
	return farbfeld.Pixel{
		R: lerp(c1.R, c2.R, t1, t2),
		G: lerp(c1.G, c2.G, t1, t2),
		B: lerp(c1.B, c2.B, t1, t2),
		A: 0xffff,
	}
}

func lerp(v1, v2 uint16, t1, t2 float64) uint16 {
	return uint16(float64(v1)*t1 + float64(v2)*t2)
}

// interior reports whether c+di lies in the main cardioid or the
// period-2 bulb of the Mandelbrot set. Both regions never escape.
func interior(c, d float64) bool {
	d2 := d * d
	q := (c-0.25)*(c-0.25) + d2
	if q*(q+(c-0.25)) <= 0.25*d2 {
		return true
	}
	return (c+1)*(c+1)+d2 <= 0.0625
}
