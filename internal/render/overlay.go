package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"time"

	"github.com/glowbox/backdrop/internal/render/layout"
	"github.com/glowbox/backdrop/internal/state"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	overlayMargin   = 24
	overlayFontSize = 18
)

// Overlay draws the diagnostic HUD over the rendered background: a status
// line (variant, elapsed time, FPS) and a QR code pointing a phone at the
// control UI.
type Overlay struct {
	face font.Face
	qr   image.Image
	url  string

	Logger Logger
}

func NewOverlay() *Overlay {
	return &Overlay{face: basicfont.Face7x13}
}

// LoadFont parses a TTF or OTF file and uses it for the status line. On any
// failure the overlay keeps basicfont, same as running without a font.
func (ov *Overlay) LoadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}

	// Try freetype's truetype parser first, fall back to x/image opentype
	// for OTF files it rejects.
	if tt, terr := truetype.Parse(data); terr == nil {
		ov.face = truetype.NewFace(tt, &truetype.Options{Size: overlayFontSize, DPI: 96, Hinting: font.HintingFull})
		if ov.Logger != nil {
			ov.Logger.Infof("overlay", "loaded truetype font %s", path)
		}
		return nil
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: overlayFontSize, DPI: 96, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("font face %s: %w", path, err)
	}
	ov.face = face
	if ov.Logger != nil {
		ov.Logger.Infof("overlay", "loaded opentype font %s", path)
	}
	return nil
}

// SetControlURL regenerates the QR code for the control UI.
func (ov *Overlay) SetControlURL(url string) {
	ov.url = url
	if url == "" {
		ov.qr = nil
		return
	}
	qr, err := ControlURLQR(url, defaultQRCodeSizePx)
	if err != nil {
		if ov.Logger != nil {
			ov.Logger.Errorf("overlay", "qr generate failed: %v", err)
		}
		ov.qr = nil
		return
	}
	ov.qr = qr
}

// Draw composites the HUD onto the canvas.
func (ov *Overlay) Draw(canvas *image.RGBA, snap state.State, t float64) {
	status := fmt.Sprintf("%s  t=%s  %.0f fps",
		snap.Settings.Variant, formatElapsed(t), snap.Stats.FPS)
	if snap.Settings.Paused {
		status += "  paused"
	}
	ov.drawStatusLine(canvas, status)
	ov.drawQR(canvas)
}

func (ov *Overlay) drawStatusLine(canvas *image.RGBA, text string) {
	face := ov.face
	if face == nil {
		face = basicfont.Face7x13
	}
	ascent := face.Metrics().Ascent.Ceil()
	x := canvas.Bounds().Min.X + overlayMargin
	baseline := canvas.Bounds().Min.Y + overlayMargin + ascent

	// Shadow first, one pixel down-right, so the line reads on any gradient.
	drawText(canvas, text, x+1, baseline+1, OverlayShadow, face)
	drawText(canvas, text, x, baseline, OverlayText, face)
}

func (ov *Overlay) drawQR(canvas *image.RGBA) {
	if ov.qr == nil {
		return
	}
	qrBounds := ov.qr.Bounds()
	dest := layout.Anchor(layout.Inset(canvas.Bounds(), overlayMargin),
		layout.BottomRight, qrBounds.Dx(), qrBounds.Dy())
	draw.Draw(canvas, dest, ov.qr, qrBounds.Min, draw.Over)
}

func drawText(img *image.RGBA, text string, x, baseline int, fg color.Color, face font.Face) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: fg},
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
}

func formatElapsed(t float64) string {
	d := time.Duration(t * float64(time.Second))
	return d.Truncate(100 * time.Millisecond).String()
}
