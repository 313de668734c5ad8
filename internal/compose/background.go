package compose

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	baseMin         = 50
	baseMax         = 100
	gradientJitter  = 25
	gradientMaskMax = 255
)

// Background returns a w×h canvas shaded with a vertical two-color gradient
// around a random dark base color.
func Background(w, h int, rng RNG) *image.NRGBA {
	var base [3]int
	for i := range base {
		base[i] = baseMin + rng.IntN(baseMax-baseMin+1)
	}
	top := jitterColor(base, rng)
	bottom := jitterColor(base, rng)

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Mask is quantized to 8 bits like an L-mode alpha mask.
		t := float64(gradientMaskMax*y/h) / gradientMaskMax
		r, g, b := top.BlendRgb(bottom, t).RGB255()
		c := color.NRGBA{R: r, G: g, B: b, A: 0xff}

		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, c.A
		}
	}
	return canvas
}

func jitterColor(base [3]int, rng RNG) colorful.Color {
	var ch [3]uint8
	for i, v := range base {
		v += rng.IntN(2*gradientJitter+1) - gradientJitter
		ch[i] = uint8(min(max(v, 0), 255))
	}
	return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}
}
