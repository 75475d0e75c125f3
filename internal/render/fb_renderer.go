package render

import (
	"context"
	"image"
	"image/draw"
	"sync/atomic"
	"time"

	"github.com/glowbox/backdrop/internal/state"
	fb "github.com/gonutz/framebuffer"
)

// FBRenderer renders to the Linux framebuffer through an offscreen canvas at
// the device resolution.
type FBRenderer struct {
	Device  string
	FPS     int
	Workers int
	Overlay *Overlay
	Logger  Logger

	fbDev   *fb.Device
	canvas  *image.RGBA
	running atomic.Bool
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{Device: "/dev/fb0"} }

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev

	bounds := dev.Bounds()
	r.canvas = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if r.Logger != nil {
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// Size returns the canvas size, which matches the device resolution.
func (r *FBRenderer) Size() (int, int) {
	if r.canvas == nil {
		return 0, 0
	}
	return r.canvas.Bounds().Dx(), r.canvas.Bounds().Dy()
}

// RedrawAt renders one full frame at elapsed time t and blits it to the
// device.
func (r *FBRenderer) RedrawAt(snap state.State, t float64) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	Frame(r.canvas, snap.Settings.Variant, t, r.Workers)
	if snap.Settings.Overlay && r.Overlay != nil {
		r.Overlay.Draw(r.canvas, snap, t)
	}
	r.blit()
}

func (r *FBRenderer) blit() {
	bounds := r.fbDev.Bounds()
	draw.Draw(r.fbDev, bounds, r.canvas, r.canvas.Bounds().Min, draw.Src)
}

// RunLoop redraws at the configured FPS until the context is done. The clock
// only advances while unpaused; a paused loop keeps blitting the same frame
// so the overlay stays current.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store, clock *Clock) {
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			t := clock.Tick(snap.Settings.Paused)
			frameStart := time.Now()
			r.RedrawAt(snap, t)
			store.RecordFrame(time.Since(frameStart))
			if r.Logger != nil && time.Since(lastLog) > 10*time.Second {
				stats := store.Snapshot().Stats
				r.Logger.Infof("fb", "heartbeat: frames=%d fps=%.1f variant=%s",
					stats.Frames, stats.FPS, snap.Settings.Variant)
				lastLog = time.Now()
			}
		}
	}
}
