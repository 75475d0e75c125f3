package render

import "image/color"

// Render configuration shared by the output targets.
var (
	// Overlay text and shadow colors.
	OverlayText   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	OverlayShadow = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}

	// DefaultFPS is the frame loop rate when none is configured.
	DefaultFPS = 30

	// Offscreen canvas size used when no device dictates one (simulator,
	// frame.png endpoint).
	CanvasWidth  = 1280
	CanvasHeight = 720
)
