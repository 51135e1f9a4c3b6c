// Package img2ascii converts raster images into lines of text for a
// terminal. Each sampled pixel becomes one glyph from a brightness ramp,
// optionally colored with a 24-bit escape carrying the sampled RGB value.
//
// The pipeline runs luminance reduction, contrast adjustment and
// Floyd-Steinberg dithering on a single intensity buffer, then renders
// output rows concurrently on a fixed pool of workers and emits them in
// row order.
package img2ascii

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// Version is the converter release.
const Version = "1.0.0"

// Defaults used by NewConverter and the command line.
const (
	DefaultScale    = 8
	DefaultAspect   = 0.5
	DefaultContrast = 1.1
)

// Configuration errors returned by Render and Convert.
var (
	ErrInvalidScale    = errors.New("sample stride must be at least 1")
	ErrInvalidAspect   = errors.New("aspect correction must be a positive finite number")
	ErrInvalidContrast = errors.New("contrast must be a non-negative finite number")
	ErrInvalidWorkers  = errors.New("worker count must not be negative")
)

// Converter holds the configuration of image-to-text conversions. It keeps
// no per-image state, so one Converter may be used for any number of
// conversions, including concurrent ones.
type Converter struct {
	Scale    int
	Aspect   float64
	Contrast float64
	Color    bool
	// Workers is the requested worker pool size, capped at GOMAXPROCS;
	// 0 means GOMAXPROCS.
	Workers int
	Ramp    Ramp

	log *slog.Logger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter with the given options.
// Default values: Scale=8, Aspect=0.5, Contrast=1.1, Color=true,
// Workers=0 (GOMAXPROCS), Ramp=DefaultRamp.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		Scale:    DefaultScale,
		Aspect:   DefaultAspect,
		Contrast: DefaultContrast,
		Color:    true,
		Ramp:     DefaultRamp,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithScale sets the horizontal sample stride.
func WithScale(scale int) ConverterOption {
	return func(c *Converter) {
		c.Scale = scale
	}
}

// WithAspect sets the aspect correction used to derive the vertical
// stride.
func WithAspect(aspect float64) ConverterOption {
	return func(c *Converter) {
		c.Aspect = aspect
	}
}

// WithContrast sets the contrast factor applied around mid-gray.
func WithContrast(contrast float64) ConverterOption {
	return func(c *Converter) {
		c.Contrast = contrast
	}
}

// WithColor enables or disables true-color escapes.
func WithColor(color bool) ConverterOption {
	return func(c *Converter) {
		c.Color = color
	}
}

// WithWorkers sets the number of rendering workers (0 = GOMAXPROCS).
// Counts above GOMAXPROCS are capped.
func WithWorkers(n int) ConverterOption {
	return func(c *Converter) {
		c.Workers = n
	}
}

// WithRamp replaces the glyph ramp.
func WithRamp(ramp Ramp) ConverterOption {
	return func(c *Converter) {
		c.Ramp = ramp
	}
}

// WithLogger sets the logger. A nil logger keeps the default, which
// discards everything.
func WithLogger(log *slog.Logger) ConverterOption {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// params validates the configuration and derives the sampling parameters.
func (c *Converter) params() (Params, error) {
	if c.Contrast < 0 || math.IsNaN(c.Contrast) || math.IsInf(c.Contrast, 0) {
		return Params{}, fmt.Errorf("contrast %v: %w", c.Contrast, ErrInvalidContrast)
	}
	if c.Workers < 0 {
		return Params{}, fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidWorkers)
	}
	if c.Ramp.Len() < 2 {
		return Params{}, ErrEmptyRamp
	}
	return NewParams(c.Scale, c.Aspect, c.Color)
}

// Render converts img and returns the rendered lines in row order. Rows
// that failed to render are omitted. img is not modified.
func (c *Converter) Render(img *imageutil.RGBImage) ([]string, error) {
	table, err := c.render(img)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(table))
	for _, line := range table {
		if line != nil {
			lines = append(lines, string(line))
		}
	}
	return lines, nil
}

// Convert renders img and writes one line per row to w.
func (c *Converter) Convert(img *imageutil.RGBImage, w io.Writer) error {
	table, err := c.render(img)
	if err != nil {
		return err
	}
	return emit(w, table)
}

// ConvertFile decodes the image at path and writes its rendering to w.
func (c *Converter) ConvertFile(path string, w io.Writer) error {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return err
	}
	return c.Convert(img, w)
}

// render runs the whole pipeline and returns the line table, with nil
// for rows that produced no output.
func (c *Converter) render(img *imageutil.RGBImage) ([][]byte, error) {
	params, err := c.params()
	if err != nil {
		return nil, err
	}
	if _, err := imageutil.NewRGBImageFromPix(img.Width, img.Height, img.Pix); err != nil {
		return nil, err
	}
	start := time.Now()

	gray := imageutil.ToGrayscale(img)
	imageutil.AdjustContrast(gray, c.Contrast)
	Dither(gray, c.Ramp)

	rows := params.Rows(img.Height)
	workers := min(WorkerCount(c.Workers), max(rows, 1))
	c.log.Debug("rendering",
		"width", img.Width, "height", img.Height,
		"scale", params.Scale, "vscale", params.VScale,
		"rows", rows, "cols", params.Cols(img.Width),
		"workers", workers, "color", params.Color)

	table := make([][]byte, rows)
	renderer := newRowRenderer(img, gray, c.Ramp, params)
	renderSpans(c.log, Partition(rows, workers), table, renderer.renderRow)

	dropped := 0
	for _, line := range table {
		if line == nil {
			dropped++
		}
	}
	if dropped > 0 {
		c.log.Warn("rows omitted from output", "dropped", dropped, "rows", rows)
	}
	c.log.Debug("rendered", "rows", rows-dropped, "elapsed", time.Since(start))
	return table, nil
}

// emit writes the non-empty lines of table to w in row order.
func emit(w io.Writer, table [][]byte) error {
	bw := bufio.NewWriter(w)
	for _, line := range table {
		if line == nil {
			continue
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
