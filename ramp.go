package img2ascii

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultGlyphs is the built-in glyph ramp ordered from darkest to
// brightest.
const DefaultGlyphs = " .,:;irsXA253hMHGS#9B&@"

// Ramp validation errors.
var (
	ErrEmptyRamp   = errors.New("glyph ramp needs at least two glyphs")
	ErrRampTooLong = errors.New("glyph ramp has more than 256 glyphs")
	ErrGlyphWidth  = errors.New("glyph does not occupy exactly one cell")

	// DefaultRamp is the ramp used unless WithRamp overrides it.
	DefaultRamp = MustRamp(DefaultGlyphs)
)

// Ramp is an immutable, ordered set of glyphs from darkest (level 0) to
// brightest (level N-1). It defines the quantization levels shared by the
// ditherer and the row renderer.
type Ramp struct {
	glyphs []string
}

// NewRamp splits s into grapheme clusters and returns them as a ramp. Every
// cluster must be a single terminal cell wide.
func NewRamp(s string) (Ramp, error) {
	var glyphs []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		glyph := g.Str()
		if w := runewidth.StringWidth(glyph); w != 1 {
			return Ramp{}, fmt.Errorf("glyph %q at level %d is %d cells wide: %w",
				glyph, len(glyphs), w, ErrGlyphWidth)
		}
		glyphs = append(glyphs, glyph)
	}
	switch {
	case len(glyphs) < 2:
		return Ramp{}, ErrEmptyRamp
	case len(glyphs) > 256:
		return Ramp{}, ErrRampTooLong
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustRamp is like NewRamp but panics on an invalid ramp.
func MustRamp(s string) Ramp {
	r, err := NewRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs N.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the glyph for a level in [0, N-1].
func (r Ramp) Glyph(level int) string {
	return r.glyphs[level]
}

// Level maps an intensity to the nearest ramp level:
// round(v * (N-1) / 255).
func (r Ramp) Level(v uint8) int {
	steps := len(r.glyphs) - 1
	return (2*int(v)*steps + 255) / 510
}

// Value maps a level back to the intensity it represents:
// round(level * 255 / (N-1)). Level(Value(l)) == l for every level.
func (r Ramp) Value(level int) uint8 {
	steps := len(r.glyphs) - 1
	return uint8((2*level*255 + steps) / (2 * steps))
}

// String returns the glyphs concatenated in order.
func (r Ramp) String() string {
	var n int
	for _, g := range r.glyphs {
		n += len(g)
	}
	b := make([]byte, 0, n)
	for _, g := range r.glyphs {
		b = append(b, g...)
	}
	return string(b)
}

// maxGlyphLen is the longest glyph encoding in bytes, used to size lines.
func (r Ramp) maxGlyphLen() int {
	n := 0
	for _, g := range r.glyphs {
		n = max(n, len(g))
	}
	return n
}
