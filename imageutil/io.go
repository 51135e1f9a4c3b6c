package imageutil

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// LoadImage loads an image from the specified path and packs it into RGB8.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
func LoadImage(path string) (*RGBImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RGBImageFromImage(img), nil
}

// RGBImageFromImage converts any image.Image to a packed RGBImage. Colors
// are taken in non-premultiplied form and alpha is discarded.
func RGBImageFromImage(img image.Image) *RGBImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := NewRGBImage(width, height)
	for y := 0; y < height; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		dst := out.Pix[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return out
}
