package img2ascii

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii/imageutil"
)

func randomGray(seed int64, w, h int) *imageutil.GrayImage {
	rng := rand.New(rand.NewSource(seed))
	gray := imageutil.NewGrayImage(w, h)
	rng.Read(gray.Pix)
	return gray
}

func TestDitherOutputOnRampLevels(t *testing.T) {
	t.Parallel()
	ramps := []Ramp{DefaultRamp, MustRamp(" #"), MustRamp(" .:-=+*#%@")}
	for _, ramp := range ramps {
		valid := make(map[uint8]bool, ramp.Len())
		for level := 0; level < ramp.Len(); level++ {
			valid[ramp.Value(level)] = true
		}

		gray := randomGray(42, 61, 37)
		Dither(gray, ramp)
		for i, v := range gray.Pix {
			require.True(t, valid[v], "ramp %q: pixel %d has off-ramp value %d",
				ramp.String(), i, v)
		}
	}
}

func TestDitherDeterministic(t *testing.T) {
	t.Parallel()
	a := randomGray(7, 40, 30)
	b := a.Clone()
	Dither(a, DefaultRamp)
	Dither(b, DefaultRamp)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestDitherSolidLevels(t *testing.T) {
	// Values already on a ramp level produce no error and stay unchanged.
	for level := 0; level < DefaultRamp.Len(); level++ {
		v := DefaultRamp.Value(level)
		gray := imageutil.NewGrayImage(5, 5)
		for i := range gray.Pix {
			gray.Pix[i] = v
		}
		Dither(gray, DefaultRamp)
		for _, got := range gray.Pix {
			require.Equal(t, v, got)
		}
	}
}

func TestDitherPreservesMeanBrightness(t *testing.T) {
	t.Parallel()
	// Mid-gray between two levels must average out close to the input.
	gray := imageutil.NewGrayImage(64, 64)
	for i := range gray.Pix {
		gray.Pix[i] = 100
	}
	Dither(gray, MustRamp(" #"))
	mean := imageutil.MeanGray(gray)
	assert.InDelta(t, 100, mean, 5, "mean %v drifted", mean)
}

func TestDitherErrorOnlyMovesForward(t *testing.T) {
	// Changing a pixel must leave every pixel earlier in raster order
	// untouched.
	base := randomGray(3, 9, 7)
	for idx := 0; idx < len(base.Pix); idx++ {
		a := base.Clone()
		b := base.Clone()
		b.Pix[idx] ^= 0x80
		Dither(a, DefaultRamp)
		Dither(b, DefaultRamp)
		require.Equal(t, a.Pix[:idx], b.Pix[:idx], "pixel %d leaked backwards", idx)
	}
}

func TestDitherTwoByTwo(t *testing.T) {
	// Hand-computed pass with a two-level ramp:
	// (0,0) 100 -> 0, E=100: right 144, below 131, below-right 106
	// (1,0) 144 -> 255, E=-111: below-left 110, below 71
	// (0,1) 110 -> 0, E=110: right 119
	// (1,1) 119 -> 0
	gray := imageutil.NewGrayImage(2, 2)
	copy(gray.Pix, []uint8{100, 100, 100, 100})

	Dither(gray, MustRamp(" #"))
	assert.Equal(t, []uint8{0, 255, 0, 0}, gray.Pix)
}

func TestDitherBelowLeftAddressing(t *testing.T) {
	// Error from (1,1) must reach (0,2). Folding the offset as
	// y + 1*width + x-1 would land on (1,1) itself instead.
	// (1,1) 100 -> 0, E=100: below-left 120+18.75 = 139 -> 255
	gray := imageutil.NewGrayImage(2, 3)
	gray.SetGrayValue(1, 1, 100)
	gray.SetGrayValue(0, 2, 120)

	Dither(gray, MustRamp(" #"))
	assert.Equal(t, []uint8{0, 0, 0, 0, 255, 0}, gray.Pix)
}

func TestDitherEmpty(t *testing.T) {
	gray := imageutil.NewGrayImage(0, 0)
	assert.NotPanics(t, func() { Dither(gray, DefaultRamp) })
}
