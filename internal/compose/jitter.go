package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// RNG is the random source of one composition. *rand.Rand from
// math/rand/v2 satisfies it.
type RNG interface {
	// IntN returns a random int in [0, n).
	IntN(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Jitter is the per-placement visual variation.
type Jitter struct {
	// Brightness scales RGB by a factor in [1-Brightness, 1+Brightness].
	// Zero disables brightness jitter.
	Brightness float64
	// Size scales both axes by one factor in [1-Size, 1+Size].
	Size float64
}

// uniform returns a value in [lo, hi).
func uniform(rng RNG, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Apply returns a resized and brightness-adjusted copy of src. The source
// image is never modified.
func (j Jitter) Apply(src image.Image, rng RNG) *image.NRGBA {
	factor := uniform(rng, 1-j.Size, 1+j.Size)
	b := src.Bounds()
	w := max(int(float64(b.Dx())*factor), 1)
	h := max(int(float64(b.Dy())*factor), 1)

	out := imaging.Resize(src, w, h, imaging.Lanczos)

	if j.Brightness > 0 {
		f := uniform(rng, 1-j.Brightness, 1+j.Brightness)
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f), A: c.A}
		})
	}
	return out
}

func scale(v uint8, f float64) uint8 {
	s := float64(v) * f
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return 0
	}
	return uint8(s + 0.5)
}
