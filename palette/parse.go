package palette

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/fractal/farbfeld"
)

// ErrSyntax is wrapped by every [ParseError].
var ErrSyntax = errors.New("palette: malformed colour")

// ParseError reports a line of a palette file that could not be parsed.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("palette: line %d: malformed colour %q", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Load reads a palette file from disk. See [Parse] for the format.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads one colour per line from r. A line is one of
//
//	#RRGGBB       two hex digits per channel
//	R G B         three whitespace-separated decimal channels, 0-255
//	name          an SVG 1.1 colour keyword such as "steelblue"
//
// Channels are scaled from 8 to 16 bits and alpha is always opaque.
// Blank lines and lines starting with ';' are skipped.
func Parse(r io.Reader) (*Palette, error) {
	var colours []farbfeld.Pixel

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == ';' {
			continue
		}
		px, ok := parseLine(text)
		if !ok {
			return nil, &ParseError{Line: line, Text: text}
		}
		colours = append(colours, px)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("palette: reading line %d: %w", line+1, err)
	}

	return New(colours)
}

func parseLine(text string) (farbfeld.Pixel, bool) {
	if text[0] == '#' {
		return parseHex(text[1:])
	}
	if c, ok := colornames.Map[strings.ToLower(text)]; ok {
		return opaque(c.R, c.G, c.B), true
	}
	return parseDecimal(text)
}

func parseHex(s string) (farbfeld.Pixel, bool) {
	if len(s) != 6 {
		return farbfeld.Pixel{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return farbfeld.Pixel{}, false
	}
	return opaque(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

func parseDecimal(s string) (farbfeld.Pixel, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return farbfeld.Pixel{}, false
	}
	var ch [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return farbfeld.Pixel{}, false
		}
		ch[i] = uint8(v)
	}
	return opaque(ch[0], ch[1], ch[2]), true
}

// opaque widens 8-bit channels so that 0xff maps to 0xffff.
func opaque(r, g, b uint8) farbfeld.Pixel {
	return farbfeld.Pixel{
		R: uint16(r) * 0x101,
		G: uint16(g) * 0x101,
		B: uint16(b) * 0x101,
		A: 0xffff,
	}
}
