// Package preview renders images as 24-bit ANSI half-block art.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/arcanaland/pokerfactory/internal/annotation"
)

// Box outlines are drawn in this color.
var boxColor = color.NRGBA{R: 255, G: 40, B: 200, A: 255}

// Outline draws the placement boxes onto a copy of img.
func Outline(img image.Image, placements []annotation.Placement) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	// Outline width scales with the image so it survives downscaling.
	thick := max(b.Dx()/200, 2)
	for _, p := range placements {
		r := p.Rect(b.Size())
		for _, edge := range []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
			image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
			image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
		} {
			draw.Draw(out, edge.Intersect(out.Bounds()), image.NewUniform(boxColor), image.Point{}, draw.Src)
		}
	}
	return out
}

// Render converts an image to ANSI art `width` characters wide. Each
// character covers two rows of pixels; the height follows the aspect ratio.
func Render(img image.Image, width int) string {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	// Resize image to desired dimensions (doubled for half-block characters)
	height := max(b.Dy()*width/b.Dx(), 1)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\x1b[0m\n")
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with 24-bit foreground and background colors
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c", r1, g1, b1, r2, g2, b2, char)
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
