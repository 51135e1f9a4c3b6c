package imageutil

import "math"

// ToGrayscale converts an RGB image to an intensity buffer using the
// standard luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 weights, rounded to the nearest integer.
func ToGrayscale(img *RGBImage) *GrayImage {
	gray := NewGrayImage(img.Width, img.Height)

	for i := range gray.Pix {
		r, g, b := int(img.Pix[i*3]), int(img.Pix[i*3+1]), int(img.Pix[i*3+2])
		// Integer math scaled by 1000, +500 rounds half up
		lum := (299*r + 587*g + 114*b + 500) / 1000
		if lum > 255 {
			lum = 255
		}
		gray.Pix[i] = uint8(lum)
	}

	return gray
}

// AdjustContrast applies a linear contrast stretch around mid-gray, in
// place: v' = clamp(round((v-128)*contrast + 128), 0, 255).
func AdjustContrast(gray *GrayImage, contrast float64) {
	if contrast == 1 {
		return
	}
	for i, v := range gray.Pix {
		gray.Pix[i] = ClampUint8((float64(v)-128)*contrast + 128)
	}
}

// ClampUint8 rounds v to the nearest integer and clamps it to [0, 255].
func ClampUint8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
