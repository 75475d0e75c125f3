package render

import (
	"context"

	"github.com/glowbox/backdrop/internal/state"
)

// Logger is what the renderers need for diagnostics; internal/app's logger
// satisfies it.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Renderer drives the frame loop for one output target. RunLoop blocks until
// the context is cancelled; RedrawAt renders a single frame at the given
// elapsed time and is what RunLoop calls once per tick.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	RunLoop(ctx context.Context, store *state.Store, clock *Clock)
	RedrawAt(snap state.State, t float64)
}

// NoopRenderer satisfies Renderer without touching any device. Used in tests
// and as a placeholder while wiring.
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                             { return nil }
func (n *NoopRenderer) Stop() error                                                 { return nil }
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store, clk *Clock) {}
func (n *NoopRenderer) RedrawAt(snap state.State, t float64)                        {}
