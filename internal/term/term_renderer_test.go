package term

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/glowbox/backdrop/internal/input"
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
)

func newSimRenderer(t *testing.T, cols, rows int) *Renderer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(cols, rows)
	r := NewRenderer()
	r.screen = screen
	r.running = true
	return r
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Event
		ok   bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.Exit, true},
		{"f4", tcell.NewEventKey(tcell.KeyF4, 0, tcell.ModNone), input.Exit, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.TogglePause, true},
		{"v", tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone), input.CycleVariant, true},
		{"upper O", tcell.NewEventKey(tcell.KeyRune, 'O', tcell.ModNone), input.ToggleOverlay, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.Exit, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := mapKey(tc.ev)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("mapKey = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestRedrawFillsScreen(t *testing.T) {
	r := newSimRenderer(t, 40, 12)
	defer r.Stop()

	snap := state.State{Settings: state.Settings{Variant: shader.Static}}
	r.RedrawAt(snap, 0)

	sim := r.screen.(tcell.SimulationScreen)
	cells, width, height := sim.GetContents()
	if width != 40 || height != 12 {
		t.Fatalf("screen %dx%d, want 40x12", width, height)
	}
	for i, cell := range cells {
		if len(cell.Runes) == 0 || cell.Runes[0] != upperHalfBlock {
			t.Fatalf("cell %d rune = %q, want half block", i, cell.Runes)
		}
	}
}

func TestRedrawGradientOrientation(t *testing.T) {
	r := newSimRenderer(t, 20, 10)
	defer r.Stop()

	snap := state.State{Settings: state.Settings{Variant: shader.Static}}
	r.RedrawAt(snap, 0)

	sim := r.screen.(tcell.SimulationScreen)
	cells, width, _ := sim.GetContents()

	// Static red follows the upward-growing y: top row foreground must be
	// redder than the bottom row's.
	topFg, _, _ := cells[0].Style.Decompose()
	bottomFg, _, _ := cells[9*width].Style.Decompose()
	tr, _, _ := topFg.RGB()
	br, _, _ := bottomFg.RGB()
	if tr <= br {
		t.Fatalf("top red %d <= bottom red %d; orientation wrong", tr, br)
	}
}

func TestQuantize255(t *testing.T) {
	if quantize255(0.5) != 128 {
		t.Fatalf("got %d", quantize255(0.5))
	}
	if quantize255(2) != 255 || quantize255(-1) != 0 {
		t.Fatal("saturation broken")
	}
}

func TestClockIntegration(t *testing.T) {
	// RunLoop wiring smoke test: cancelled context returns promptly.
	r := newSimRenderer(t, 10, 4)
	defer r.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := state.NewStore(state.Settings{})
	r.RunLoop(ctx, store, render.NewClock())
}
