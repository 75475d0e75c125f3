package state

import (
	"sync"
	"testing"
	"time"

	"github.com/glowbox/backdrop/internal/shader"
)

func TestSnapshotIsCopy(t *testing.T) {
	store := NewStore(Settings{Variant: shader.Static, Overlay: true})
	snap := store.Snapshot()
	store.SetVariant(shader.Animated)
	if snap.Settings.Variant != shader.Static {
		t.Fatal("snapshot mutated by later write")
	}
	if store.Snapshot().Settings.Variant != shader.Animated {
		t.Fatal("write not visible in new snapshot")
	}
}

func TestCycleVariant(t *testing.T) {
	store := NewStore(Settings{Variant: shader.Static})
	if got := store.CycleVariant(); got != shader.Animated {
		t.Fatalf("got %v, want animated", got)
	}
	if got := store.CycleVariant(); got != shader.Static {
		t.Fatalf("got %v, want static", got)
	}
}

func TestToggles(t *testing.T) {
	store := NewStore(Settings{})
	if !store.TogglePaused() {
		t.Fatal("first toggle should pause")
	}
	if store.TogglePaused() {
		t.Fatal("second toggle should resume")
	}
	if !store.ToggleOverlay() {
		t.Fatal("first toggle should enable overlay")
	}
}

func TestRecordFrame(t *testing.T) {
	store := NewStore(Settings{})
	store.RecordFrame(20 * time.Millisecond)
	snap := store.Snapshot()
	if snap.Stats.Frames != 1 {
		t.Fatalf("frames = %d, want 1", snap.Stats.Frames)
	}
	if snap.Stats.FPS < 49 || snap.Stats.FPS > 51 {
		t.Fatalf("fps = %v, want ~50", snap.Stats.FPS)
	}

	// Smoothing keeps the estimate between the old and new instantaneous
	// rates.
	store.RecordFrame(40 * time.Millisecond)
	snap = store.Snapshot()
	if snap.Stats.FPS <= 25 || snap.Stats.FPS >= 50 {
		t.Fatalf("fps = %v, want between 25 and 50", snap.Stats.FPS)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore(Settings{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.CycleVariant()
				store.RecordFrame(time.Millisecond)
				_ = store.Snapshot()
			}
		}()
	}
	wg.Wait()
	if got := store.Snapshot().Stats.Frames; got != 800 {
		t.Fatalf("frames = %d, want 800", got)
	}
}
