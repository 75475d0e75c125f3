// Package term renders the procedural background into a terminal using
// tcell, for previewing on machines without a framebuffer. Each character
// cell holds two vertically stacked "pixels" via the upper-half-block glyph:
// the shader runs at cell-column x double-row resolution.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/glowbox/backdrop/internal/input"
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
)

const upperHalfBlock = '▀'

// Renderer draws frames into a tcell screen. While it runs it owns the
// terminal keyboard, so it also implements input.Input and translates key
// presses into control events.
type Renderer struct {
	FPS    int
	Logger render.Logger

	screen tcell.Screen
	events chan input.Event

	mu      sync.Mutex
	running bool
}

func NewRenderer() *Renderer {
	return &Renderer{events: make(chan input.Event, 8)}
}

func (r *Renderer) Events() <-chan input.Event { return r.events }

// Start initializes the terminal screen. It is idempotent: the renderer is
// wired as both the render target and the input source, and the app starts
// each role.
func (r *Renderer) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	r.mu.Lock()
	r.screen = screen
	r.running = true
	r.mu.Unlock()

	if r.Logger != nil {
		w, h := screen.Size()
		r.Logger.Infof("term", "terminal screen %dx%d", w, h)
	}

	go r.pollEvents(ctx)
	return nil
}

func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return nil
	}
	r.running = false
	r.screen.Fini()
	return nil
}

// pollEvents forwards tcell key events as control events until the screen is
// finalized or the context ends.
func (r *Renderer) pollEvents(ctx context.Context) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch tev := ev.(type) {
		case *tcell.EventKey:
			if ctl, ok := mapKey(tev); ok {
				select {
				case r.events <- ctl:
				default:
				}
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

func mapKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF4, tcell.KeyCtrlC:
		return input.Exit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return input.TogglePause, true
		case 'v', 'V':
			return input.CycleVariant, true
		case 'o', 'O':
			return input.ToggleOverlay, true
		case 'q', 'Q':
			return input.Exit, true
		}
	}
	return "", false
}

// RedrawAt shades every half-block cell for elapsed time t and flushes the
// screen. The shader viewport is (columns, 2*rows) so the gradient keeps its
// orientation: shader y grows upward, terminal rows grow downward.
func (r *Renderer) RedrawAt(snap state.State, t float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}

	cols, rows := r.screen.Size()
	if cols == 0 || rows == 0 {
		return
	}
	vp := shader.Viewport{W: float64(cols), H: float64(rows * 2)}
	variant := snap.Settings.Variant

	for row := 0; row < rows; row++ {
		// Terminal row 0 is the top: upper half-pixel sits highest.
		upperY := vp.H - float64(row*2) - 0.5
		lowerY := upperY - 1
		for col := 0; col < cols; col++ {
			x := float64(col) + 0.5
			fg := cellColor(shader.Shade(variant, shader.Vec2{X: x, Y: upperY}, vp, t))
			bg := cellColor(shader.Shade(variant, shader.Vec2{X: x, Y: lowerY}, vp, t))
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			r.screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	if snap.Settings.Overlay {
		r.drawStatus(cols, snap, t)
	}
	r.screen.Show()
}

func (r *Renderer) drawStatus(cols int, snap state.State, t float64) {
	status := fmt.Sprintf(" %s  t=%.1fs  %.0f fps ", snap.Settings.Variant, t, snap.Stats.FPS)
	if snap.Settings.Paused {
		status += " paused "
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, ch := range status {
		if i >= cols {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, style)
	}
}

// cellColor quantizes an unclamped shader color for tcell. NaN maps to 0,
// infinities saturate, mirroring the framebuffer path.
func cellColor(c shader.RGBA) tcell.Color {
	return tcell.NewRGBColor(quantize255(c.R), quantize255(c.G), quantize255(c.B))
}

func quantize255(v float64) int32 {
	if v >= 1 {
		return 255
	}
	if v > 0 {
		return int32(v*255 + 0.5)
	}
	return 0
}

func (r *Renderer) RunLoop(ctx context.Context, store *state.Store, clock *render.Clock) {
	fps := r.FPS
	if fps <= 0 {
		fps = render.DefaultFPS
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
