// Package imageutil provides the pixel buffers used by the text
// conversion pipeline: a tightly packed RGB8 image, a dense single-channel
// intensity buffer, and the helpers that move between them.
package imageutil

import (
	"errors"
	"fmt"
	"image"
)

// ErrPixelCount is returned when a pixel slice does not hold exactly
// width*height*3 bytes.
var ErrPixelCount = errors.New("pixel count does not match dimensions")

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// RGBImage is a row-major, top-to-bottom image with three bytes per pixel
// and no padding between rows.
type RGBImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRGBImage creates a black RGBImage with the specified dimensions.
func NewRGBImage(width, height int) *RGBImage {
	return &RGBImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// NewRGBImageFromPix wraps an existing packed RGB8 slice. The slice is not
// copied.
func NewRGBImageFromPix(width, height int, pix []uint8) (*RGBImage, error) {
	if width < 0 || height < 0 || len(pix) != width*height*3 {
		return nil, fmt.Errorf("%dx%d image with %d bytes: %w",
			width, height, len(pix), ErrPixelCount)
	}
	return &RGBImage{Width: width, Height: height, Pix: pix}, nil
}

// offset returns the index of the red byte of pixel (x, y).
func (img *RGBImage) offset(x, y int) int {
	return (y*img.Width + x) * 3
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBImage) GetRGB(x, y int) RGB {
	i := img.offset(x, y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBImage) SetRGB(x, y int, c RGB) {
	i := img.offset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
}

// Bounds returns the image rectangle anchored at the origin.
func (img *RGBImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// Clone creates a deep copy of the image.
func (img *RGBImage) Clone() *RGBImage {
	clone := NewRGBImage(img.Width, img.Height)
	copy(clone.Pix, img.Pix)
	return clone
}

// GrayImage wraps image.Gray for single-channel intensity buffers. Images
// created by this package always have Stride equal to the width.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Pix[y*img.Stride+x]
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Pix[y*img.Stride+x] = v
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}
