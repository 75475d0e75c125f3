package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glowbox/backdrop/internal/state"
)

// ImageRenderer renders frames offscreen. It backs the simulator and the
// frame.png endpoint: the latest frame is kept and can be encoded on demand,
// and frames can optionally be dumped to a directory as numbered PNGs.
type ImageRenderer struct {
	Width   int
	Height  int
	FPS     int
	Workers int
	Overlay *Overlay
	Logger  Logger

	// DumpDir, when set, receives frame-NNNNN.png files.
	DumpDir string

	mu      sync.Mutex
	canvas  *image.RGBA
	dumped  int
	running bool
}

func NewImageRenderer(width, height int) *ImageRenderer {
	if width <= 0 {
		width = CanvasWidth
	}
	if height <= 0 {
		height = CanvasHeight
	}
	return &ImageRenderer{Width: width, Height: height}
}

func (r *ImageRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas = image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	r.running = true
	if r.DumpDir != "" {
		if err := os.MkdirAll(r.DumpDir, 0o755); err != nil {
			return fmt.Errorf("dump dir %s: %w", r.DumpDir, err)
		}
	}
	return nil
}

func (r *ImageRenderer) Stop() error {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
	return nil
}

func (r *ImageRenderer) RedrawAt(snap state.State, t float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.canvas == nil {
		return
	}
	Frame(r.canvas, snap.Settings.Variant, t, r.Workers)
	if snap.Settings.Overlay && r.Overlay != nil {
		r.Overlay.Draw(r.canvas, snap, t)
	}
	if r.DumpDir != "" {
		r.dumpLocked()
	}
}

func (r *ImageRenderer) dumpLocked() {
	name := filepath.Join(r.DumpDir, fmt.Sprintf("frame-%05d.png", r.dumped))
	f, err := os.Create(name)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("image", "dump %s: %v", name, err)
		}
		return
	}
	defer f.Close()
	if err := png.Encode(f, r.canvas); err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("image", "encode %s: %v", name, err)
		}
		return
	}
	r.dumped++
}

// LatestPNG encodes the most recently rendered frame.
func (r *ImageRenderer) LatestPNG() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return nil, fmt.Errorf("no frame rendered yet")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *ImageRenderer) RunLoop(ctx context.Context, store *state.Store, clock *Clock) {
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
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
		}
	}
}
