package render

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
)

func TestImageRendererLatestPNG(t *testing.T) {
	r := NewImageRenderer(80, 45)
	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	snap := state.State{Settings: state.Settings{Variant: shader.Static}}
	r.RedrawAt(snap, 0)

	data, err := r.LatestPNG()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 45 {
		t.Fatalf("decoded size %v, want 80x45", img.Bounds())
	}
}

func TestImageRendererNoFrameYet(t *testing.T) {
	r := NewImageRenderer(10, 10)
	if _, err := r.LatestPNG(); err == nil {
		t.Fatal("want error before Start")
	}
}

func TestImageRendererDump(t *testing.T) {
	dir := t.TempDir()
	r := NewImageRenderer(16, 16)
	r.DumpDir = dir
	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	snap := state.State{Settings: state.Settings{Variant: shader.Animated}}
	r.RedrawAt(snap, 0)
	r.RedrawAt(snap, 0.1)

	for _, name := range []string{"frame-00000.png", "frame-00001.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestImageRendererDefaultSize(t *testing.T) {
	r := NewImageRenderer(0, 0)
	if r.Width != CanvasWidth || r.Height != CanvasHeight {
		t.Fatalf("got %dx%d, want defaults", r.Width, r.Height)
	}
}
