// Package layout has small rectangle helpers for placing overlay elements on
// the canvas.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Corner identifies an anchor corner of a rectangle.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Anchor places a width x height box in the given corner of rect.
func Anchor(rect image.Rectangle, corner Corner, width, height int) image.Rectangle {
	rect = Normalize(rect)
	if width > rect.Dx() {
		width = rect.Dx()
	}
	if height > rect.Dy() {
		height = rect.Dy()
	}
	var min image.Point
	switch corner {
	case TopLeft:
		min = rect.Min
	case TopRight:
		min = image.Pt(rect.Max.X-width, rect.Min.Y)
	case BottomLeft:
		min = image.Pt(rect.Min.X, rect.Max.Y-height)
	default:
		min = image.Pt(rect.Max.X-width, rect.Max.Y-height)
	}
	return image.Rect(min.X, min.Y, min.X+width, min.Y+height)
}
