package compose

import "image"

// Slot names an anchor position for seated players.
type Slot string

const (
	TopLeft      Slot = "top_left"
	TopMiddle    Slot = "top_middle"
	TopRight     Slot = "top_right"
	BottomLeft   Slot = "bottom_left"
	BottomMiddle Slot = "bottom_middle"
	BottomRight  Slot = "bottom_right"
)

// Anchor is a slot and its position on a canvas.
type Anchor struct {
	Slot Slot
	At   image.Point
}

// Anchors returns the six seat anchors of a w×h canvas.
func Anchors(w, h int) []Anchor {
	return []Anchor{
		{TopLeft, image.Pt(w/8, 180)},
		{TopMiddle, image.Pt(w/2, 150)},
		{TopRight, image.Pt(7*w/8, 180)},
		{BottomLeft, image.Pt(w/8, h-180)},
		{BottomMiddle, image.Pt(w/2, h-100)},
		{BottomRight, image.Pt(7*w/8, h-180)},
	}
}

const dealerOffset = 20

// dealerPosition returns where the dealer button is centered for a seat of
// size seat anchored at `at`. Each slot pushes the button diagonally away
// from the table edge.
func dealerPosition(slot Slot, at, seat image.Point) image.Point {
	dx := seat.X/2 + dealerOffset
	dy := seat.Y/2 + dealerOffset

	switch slot {
	case TopLeft:
		return image.Pt(at.X+dx, at.Y+dy)
	case TopMiddle:
		return image.Pt(at.X, at.Y+dy)
	case TopRight:
		return image.Pt(at.X-dx, at.Y+dy)
	case BottomLeft:
		return image.Pt(at.X+dx, at.Y-dy)
	case BottomMiddle:
		return image.Pt(at.X+dx, at.Y-dy)
	default: // BottomRight
		return image.Pt(at.X-dx, at.Y-dy)
	}
}
