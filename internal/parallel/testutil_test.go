package parallel

import (
	"bytes"
	"errors"
	"io"
	"runtime"

	"github.com/gogpu/fractal/farbfeld"
)

// span is a byte range written to a memSink.
type span struct {
	off, n int64
}

// memSink is an in-memory io.WriteSeeker that records every write.
type memSink struct {
	data   []byte
	pos    int64
	writes []span
}

func (m *memSink) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}
	copy(m.data[m.pos:], p)
	m.writes = append(m.writes, span{off: m.pos, n: int64(len(p))})
	m.pos = end
	return len(p), nil
}

func (m *memSink) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	}
	if abs < 0 {
		return 0, errors.New("memSink: negative position")
	}
	m.pos = abs
	return abs, nil
}

// streamOnly hides any Seek method of the wrapped writer.
type streamOnly struct {
	io.Writer
}

// pipeLike implements Seek but always fails, like os.Stdout on a pipe.
type pipeLike struct {
	bytes.Buffer
}

func (*pipeLike) Seek(int64, int) (int64, error) {
	return 0, errors.New("illegal seek")
}

// failAfter fails every write once limit bytes have been accepted.
type failAfter struct {
	limit int
	err   error
	n     int
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.n+len(p) > f.limit {
		return 0, f.err
	}
	f.n += len(p)
	return len(p), nil
}

// testKernel is deterministic but does uneven work per row so that rows
// finish out of order.
var testKernel = KernelFunc(func(x, y uint32) farbfeld.Pixel {
	if (y*2654435761)%7 == 0 {
		runtime.Gosched()
	}
	return farbfeld.Pixel{
		R: uint16(x),
		G: uint16(y),
		B: uint16(x ^ y),
		A: 0xffff,
	}
})

// expectedImage encodes the testKernel image sequentially.
func expectedImage(width, height uint32) []byte {
	var buf bytes.Buffer
	hdr, _ := farbfeld.Header{Width: width, Height: height}.MarshalBinary()
	buf.Write(hdr)

	pixels := make([]farbfeld.Pixel, width)
	row := make([]byte, farbfeld.RowSize(width))
	for y := range height {
		for x := range width {
			pixels[x] = testKernel(x, y)
		}
		farbfeld.PutRow(row, pixels)
		buf.Write(row)
	}
	return buf.Bytes()
}
