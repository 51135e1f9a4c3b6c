package img2ascii

import "github.com/wbrown/img2ascii/imageutil"

// Dither quantizes gray in place to the levels of ramp using
// Floyd-Steinberg error diffusion. Pixels are visited in raster order, so
// error pushed right or down is seen by the pixels visited later in the
// same pass. Afterwards every value equals ramp.Value(l) for some level l.
func Dither(gray *imageutil.GrayImage, ramp Ramp) {
	width, height := gray.Width(), gray.Height()
	stride := gray.Stride
	pix := gray.Pix

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			old := pix[y*stride+x]
			quantized := ramp.Value(ramp.Level(old))
			pix[y*stride+x] = quantized
			quantError := float64(old) - float64(quantized)
			if quantError == 0 {
				continue
			}

			diffuseError := func(row, col int, factor float64) {
				if row >= height || col < 0 || col >= width {
					return
				}
				i := row*stride + col
				pix[i] = imageutil.ClampUint8(float64(pix[i]) + quantError*factor)
			}

			below := y + 1
			diffuseError(y, x+1, 7.0/16.0)
			diffuseError(below, x-1, 3.0/16.0)
			diffuseError(below, x, 5.0/16.0)
			diffuseError(below, x+1, 1.0/16.0)
		}
	}
}
