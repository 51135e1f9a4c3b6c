package img2ascii

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	// ESC starts every escape sequence in colored output.
	ESC = "\u001b"

	// sgrReset ends every colored glyph.
	sgrReset = ESC + "[0m"

	// sgrMaxLen is the longest true-color prefix plus reset:
	// len("\x1b[38;2;255;255;255m") + len("\x1b[0m").
	sgrMaxLen = 19 + 4
)

// Params are the sampling parameters of one conversion.
type Params struct {
	// Scale is the horizontal sample stride in source pixels.
	Scale int
	// VScale is the vertical sample stride in source pixels.
	VScale int
	// Color wraps each glyph in a 24-bit foreground escape.
	Color bool
}

// NewParams derives the vertical stride from scale and the aspect
// correction: VScale = max(1, int(scale/aspect)). Terminal cells are
// roughly twice as tall as wide, so the default aspect of 0.5 doubles the
// vertical stride.
func NewParams(scale int, aspect float64, color bool) (Params, error) {
	if scale < 1 {
		return Params{}, fmt.Errorf("scale %d: %w", scale, ErrInvalidScale)
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return Params{}, fmt.Errorf("aspect %v: %w", aspect, ErrInvalidAspect)
	}
	vscale := float64(scale) / aspect
	if vscale > math.MaxInt32 {
		return Params{}, fmt.Errorf("aspect %v: %w", aspect, ErrInvalidAspect)
	}
	return Params{
		Scale:  scale,
		VScale: max(1, int(vscale)),
		Color:  color,
	}, nil
}

// Rows returns the number of output rows for a source height.
func (p Params) Rows(height int) int {
	return (height + p.VScale - 1) / p.VScale
}

// Cols returns the number of glyphs per output row for a source width.
func (p Params) Cols(width int) int {
	return (width + p.Scale - 1) / p.Scale
}

// rowRenderer turns output rows into text. All fields are read-only while
// workers run, so one rowRenderer is shared by every worker.
type rowRenderer struct {
	img    *imageutil.RGBImage
	gray   *imageutil.GrayImage
	ramp   Ramp
	params Params
	// lineCap is the byte capacity reserved for each line.
	lineCap int
}

func newRowRenderer(img *imageutil.RGBImage, gray *imageutil.GrayImage,
	ramp Ramp, params Params) *rowRenderer {
	perGlyph := ramp.maxGlyphLen()
	if params.Color {
		perGlyph += sgrMaxLen
	}
	return &rowRenderer{
		img:     img,
		gray:    gray,
		ramp:    ramp,
		params:  params,
		lineCap: params.Cols(img.Width) * perGlyph,
	}
}

// renderRow renders output row outY. It reports false when the row's
// source scanline lies beyond the image, which ends the caller's span.
func (r *rowRenderer) renderRow(outY int) ([]byte, bool) {
	y := outY * r.params.VScale
	if y >= r.img.Height {
		return nil, false
	}

	line := make([]byte, 0, r.lineCap)
	for x := 0; x < r.img.Width; x += r.params.Scale {
		glyph := r.ramp.Glyph(r.ramp.Level(r.gray.GetGray(x, y)))
		if !r.params.Color {
			line = append(line, glyph...)
			continue
		}
		c := r.img.GetRGB(x, y)
		line = appendTrueColor(line, c)
		line = append(line, glyph...)
		line = append(line, sgrReset...)
	}
	return line, true
}

// appendTrueColor appends ESC[38;2;R;G;Bm to b.
func appendTrueColor(b []byte, c imageutil.RGB) []byte {
	b = append(b, ESC+"[38;2;"...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	return append(b, 'm')
}

// MinStrideForWidth returns the smallest horizontal stride that fits an
// image of the given width into cols glyphs per row.
func MinStrideForWidth(width, cols int) int {
	if cols < 1 || width <= cols {
		return 1
	}
	return (width + cols - 1) / cols
}
