// Package annotation records object placements and writes them in
// detector training formats.
package annotation

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
)

// Placement is the bounding box of one entity placed on a canvas.
// Coordinates are normalized to the canvas dimensions.
type Placement struct {
	Class   int
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// NewPlacement returns the placement of rect on a canvas of the given size.
// The rectangle is clipped to the canvas first, so every field is in [0,1].
func NewPlacement(class int, rect image.Rectangle, canvas image.Point) Placement {
	r := rect.Intersect(image.Rect(0, 0, canvas.X, canvas.Y))
	if r.Empty() {
		// Fully off-canvas: collapse onto the nearest canvas edge.
		x := clamp(rect.Min.X, 0, canvas.X)
		y := clamp(rect.Min.Y, 0, canvas.Y)
		r = image.Rect(x, y, x, y)
	}

	w, h := float64(canvas.X), float64(canvas.Y)
	return Placement{
		Class:   class,
		CenterX: (float64(r.Min.X) + float64(r.Dx())/2) / w,
		CenterY: (float64(r.Min.Y) + float64(r.Dy())/2) / h,
		Width:   float64(r.Dx()) / w,
		Height:  float64(r.Dy()) / h,
	}
}

// String formats the placement as a label line.
func (p Placement) String() string {
	return strconv.Itoa(p.Class) + " " +
		formatCoord(p.CenterX) + " " +
		formatCoord(p.CenterY) + " " +
		formatCoord(p.Width) + " " +
		formatCoord(p.Height)
}

// ParsePlacement parses a label line.
func ParsePlacement(line string) (Placement, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Placement{}, fmt.Errorf("label line %q: expected 5 fields, got %d", line, len(fields))
	}

	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return Placement{}, fmt.Errorf("label line %q: class: %w", line, err)
	}

	var v [4]float64
	for i := range v {
		if v[i], err = strconv.ParseFloat(fields[i+1], 64); err != nil {
			return Placement{}, fmt.Errorf("label line %q: %w", line, err)
		}
	}

	return Placement{Class: class, CenterX: v[0], CenterY: v[1], Width: v[2], Height: v[3]}, nil
}

// Rect converts the placement back to pixel coordinates on a canvas.
func (p Placement) Rect(canvas image.Point) image.Rectangle {
	w, h := float64(canvas.X), float64(canvas.Y)
	x0 := (p.CenterX - p.Width/2) * w
	y0 := (p.CenterY - p.Height/2) * h
	return image.Rect(int(x0+0.5), int(y0+0.5), int(x0+p.Width*w+0.5), int(y0+p.Height*h+0.5))
}

// WriteLabels writes one label line per placement, in order.
func WriteLabels(path string, placements []Placement) error {
	lines := make([]string, len(placements))
	for i, p := range placements {
		lines[i] = p.String()
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("error writing labels: %w", err)
	}
	return nil
}

// ReadLabels reads a label file written by WriteLabels.
func ReadLabels(path string) ([]Placement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out []Placement
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := ParsePlacement(line)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
