// Package input turns keyboard activity into control events for the render
// loop.
package input

import "context"

type Event string

const (
	TogglePause   Event = "toggle-pause"
	CycleVariant  Event = "cycle-variant"
	ToggleOverlay Event = "toggle-overlay"
	Exit          Event = "exit"
)

type Input interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Logger is satisfied by internal/app's logger.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Noop is used when no input device is wired (simulator, non-Linux hosts).
type Noop struct{ ch chan Event }

func NewNoop() *Noop { return &Noop{ch: make(chan Event)} }

func (n *Noop) Start(ctx context.Context) error { return nil }
func (n *Noop) Stop() error                     { close(n.ch); return nil }
func (n *Noop) Events() <-chan Event            { return n.ch }
