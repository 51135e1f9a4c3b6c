package imageutil

import "image"

// CreateGradientImage creates a horizontal black to white gradient test
// image.
func CreateGradientImage(width, height int) *RGBImage {
	img := NewRGBImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := rampValue(x, width)
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *RGBImage {
	img := NewRGBImage(width, height)
	for y := 0; y < height; y++ {
		v := rampValue(y, height)
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard pattern.
func CreateCheckerboardImage(width, height, squareSize int) *RGBImage {
	img := NewRGBImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBImage {
	img := NewRGBImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBImage {
	img := NewRGBImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(1, width/len(colors))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// ToNRGBA converts an RGBImage to an opaque image.NRGBA, for encoding
// fixtures with the standard image encoders.
func ToNRGBA(img *RGBImage) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.GetRGB(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, 255
		}
	}
	return out
}

// MeanGray returns the average intensity of a grayscale image.
func MeanGray(img *GrayImage) float64 {
	if len(img.Pix) == 0 {
		return 0
	}
	var sum int
	for _, v := range img.Pix {
		sum += int(v)
	}
	return float64(sum) / float64(len(img.Pix))
}

func rampValue(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(255 * i / (n - 1))
}
