package layout

import (
	"image"
	"testing"
)

func TestInset(t *testing.T) {
	rect := Inset(image.Rect(0, 0, 100, 100), 10)
	if rect != image.Rect(10, 10, 90, 90) {
		t.Fatalf("got %v", rect)
	}
	// Over-inset collapses but stays normalized.
	rect = Inset(image.Rect(0, 0, 10, 10), 20)
	if rect.Min.X > rect.Max.X || rect.Min.Y > rect.Max.Y {
		t.Fatalf("not normalized: %v", rect)
	}
}

func TestAnchor(t *testing.T) {
	outer := image.Rect(0, 0, 100, 80)
	tests := []struct {
		corner Corner
		want   image.Rectangle
	}{
		{TopLeft, image.Rect(0, 0, 20, 10)},
		{TopRight, image.Rect(80, 0, 100, 10)},
		{BottomLeft, image.Rect(0, 70, 20, 80)},
		{BottomRight, image.Rect(80, 70, 100, 80)},
	}
	for _, tc := range tests {
		if got := Anchor(outer, tc.corner, 20, 10); got != tc.want {
			t.Fatalf("corner %v: got %v, want %v", tc.corner, got, tc.want)
		}
	}
}

func TestAnchorClampsToRect(t *testing.T) {
	got := Anchor(image.Rect(0, 0, 10, 10), BottomRight, 50, 50)
	if !got.In(image.Rect(0, 0, 10, 10)) {
		t.Fatalf("anchored box %v escapes rect", got)
	}
}
