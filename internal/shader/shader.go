// Package shader holds the per-pixel color synthesis pipeline: coordinate
// normalization, aspect correction and the two gradient mappers. Everything
// here is a pure function of (pixel position, viewport size, elapsed time);
// callers own the viewport and the clock.
package shader

import (
	"fmt"
	"math"
	"strings"
)

// Viewport is the size of the render surface in pixels. Both components must
// be positive for defined behavior; a zero component propagates non-finite
// values through the pipeline (no validation happens here, the host
// guarantees a real surface size).
type Viewport struct {
	W float64
	H float64
}

// Aspect returns the width/height ratio.
func (vp Viewport) Aspect() float64 { return vp.W / vp.H }

// Vec2 is a 2D coordinate. Pixel positions use a bottom-left origin: Y grows
// upward, matching the surface convention the mappers were designed against.
type Vec2 struct {
	X float64
	Y float64
}

// RGBA is an unclamped floating-point color. Channels are conceptually in
// [0,1] but nothing here enforces that; quantization to a display format is
// the host's concern. A is always 1 for shaded pixels.
type RGBA struct {
	R, G, B, A float64
}

// Normalize maps a pixel position into the unit square relative to the
// viewport: (p.X/vp.W, p.Y/vp.H). Positions inside the viewport land in
// [0,1]x[0,1].
func Normalize(p Vec2, vp Viewport) Vec2 {
	return Vec2{X: p.X / vp.W, Y: p.Y / vp.H}
}

// AspectCorrect rescales the horizontal component of a normalized coordinate
// by the viewport aspect ratio so horizontally-varying patterns keep their
// proportions on non-square surfaces. Only X is touched; the corrected X
// exceeds 1 on wide viewports. The one-sided scaling is intentional, do not
// recenter or clamp it.
func AspectCorrect(n Vec2, vp Viewport) Vec2 {
	return Vec2{X: n.X * vp.Aspect(), Y: n.Y}
}

// Variant selects one of the two gradient mappers. The set is closed; both
// variants share the normalize/aspect-correct pipeline and differ only in the
// final color map.
type Variant int

const (
	// Static is a time-independent diagonal red-blue gradient:
	// (C.y, 0, C.x, 1).
	Static Variant = iota
	// Animated maps the coordinate onto red/green and pulses blue with
	// |sin t|: (C.x, C.y, |sin t|, 1). The pulse period is pi.
	Animated
)

var variantNames = map[Variant]string{
	Static:   "static",
	Animated: "animated",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a configuration string onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return Static, nil
	case "animated":
		return Animated, nil
	default:
		return Static, fmt.Errorf("unknown variant %q (want static or animated)", s)
	}
}

// Variants lists the closed variant set in cycle order.
func Variants() []Variant { return []Variant{Static, Animated} }

// Next returns the following variant in cycle order, wrapping around.
func (v Variant) Next() Variant {
	if v == Static {
		return Animated
	}
	return Static
}

// Shade runs the full per-pixel pipeline for one invocation: normalize the
// pixel position, aspect-correct it, and map it to a color. t is the elapsed
// time in seconds and is only consumed by the Animated variant. The result
// is unclamped; degenerate viewport sizes yield non-finite channels.
func Shade(v Variant, p Vec2, vp Viewport, t float64) RGBA {
	c := AspectCorrect(Normalize(p, vp), vp)
	switch v {
	case Animated:
		return RGBA{R: c.X, G: c.Y, B: math.Abs(math.Sin(t)), A: 1}
	default:
		return RGBA{R: c.Y, G: 0, B: c.X, A: 1}
	}
}
