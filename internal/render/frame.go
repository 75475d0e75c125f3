package render

import (
	"bytes"
	"image"
	"image/png"
	"runtime"
	"sync"

	"github.com/glowbox/backdrop/internal/shader"
)

// Frame shades every pixel of dst for one frame: an explicit parallel map
// over the output coordinates. Rows are split into contiguous bands, one per
// worker; each worker gets the same immutable (variant, viewport, t) snapshot
// so the whole frame is consistent. workers <= 0 means GOMAXPROCS.
//
// The shader sees pixel centers with a bottom-left origin; image.RGBA is
// top-left, so rows are flipped here.
func Frame(dst *image.RGBA, v shader.Variant, t float64, workers int) {
	bounds := dst.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return
	}
	vp := shader.Viewport{W: float64(width), H: float64(height)}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}

	rowsPerWorker := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < height; start += rowsPerWorker {
		end := start + rowsPerWorker
		if end > height {
			end = height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			shadeRows(dst, v, vp, t, y0, y1)
		}(start, end)
	}
	wg.Wait()
}

func shadeRows(dst *image.RGBA, v shader.Variant, vp shader.Viewport, t float64, y0, y1 int) {
	bounds := dst.Bounds()
	width := bounds.Dx()
	for iy := y0; iy < y1; iy++ {
		// Flip: image row 0 is the top of the surface, shader y grows upward.
		py := vp.H - float64(iy) - 0.5
		row := dst.PixOffset(bounds.Min.X, bounds.Min.Y+iy)
		for ix := 0; ix < width; ix++ {
			c := shader.Shade(v, shader.Vec2{X: float64(ix) + 0.5, Y: py}, vp, t)
			o := row + ix*4
			dst.Pix[o+0] = quantizeChannel(c.R)
			dst.Pix[o+1] = quantizeChannel(c.G)
			dst.Pix[o+2] = quantizeChannel(c.B)
			dst.Pix[o+3] = quantizeChannel(c.A)
		}
	}
}

// quantizeChannel converts an unclamped shader channel to 8-bit. Clamping
// happens only here, at the host edge; the shader itself never clamps.
// NaN fails both comparisons and quantizes to 0; infinities saturate.
func quantizeChannel(v float64) uint8 {
	if v >= 1 {
		return 255
	}
	if v > 0 {
		return uint8(v*255 + 0.5)
	}
	return 0
}

// FrameImage allocates a canvas and renders one frame into it. Convenience
// for the simulator and the frame.png endpoint.
func FrameImage(width, height int, v shader.Variant, t float64, workers int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	Frame(img, v, t, workers)
	return img
}

// EncodePNG encodes a rendered frame for the HTTP surface.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
