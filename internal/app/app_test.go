package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glowbox/backdrop/internal/input"
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
	"github.com/glowbox/backdrop/internal/web"
)

// scriptedInput feeds a fixed sequence of events.
type scriptedInput struct {
	ch chan input.Event
}

func newScriptedInput(events ...input.Event) *scriptedInput {
	ch := make(chan input.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return &scriptedInput{ch: ch}
}

func (s *scriptedInput) Start(ctx context.Context) error { return nil }
func (s *scriptedInput) Stop() error                     { return nil }
func (s *scriptedInput) Events() <-chan input.Event      { return s.ch }

// countingRenderer records redraws.
type countingRenderer struct {
	render.NoopRenderer
	mu      sync.Mutex
	redraws int
}

func (c *countingRenderer) RedrawAt(snap state.State, t float64) {
	c.mu.Lock()
	c.redraws++
	c.mu.Unlock()
}

func (c *countingRenderer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
}

func TestExitStopsStart(t *testing.T) {
	store := state.NewStore(state.Settings{})
	app := New(store, &render.NoopRenderer{}, &web.NoopServer{}, nil)

	done := make(chan error, 1)
	go func() { done <- app.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	want := errors.New("boom")
	app.Exit(want)

	select {
	case err := <-done:
		if !errors.Is(err, want) {
			t.Fatalf("err = %v, want boom", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Exit")
	}
}

func TestContextCancelStopsStart(t *testing.T) {
	store := state.NewStore(state.Settings{})
	app := New(store, &render.NoopRenderer{}, &web.NoopServer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Start(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestInputEventsMutateStore(t *testing.T) {
	store := state.NewStore(state.Settings{Variant: shader.Static})
	in := newScriptedInput(input.CycleVariant, input.TogglePause, input.ToggleOverlay, input.Exit)
	app := New(store, &countingRenderer{}, &web.NoopServer{}, in)

	done := make(chan error, 1)
	go func() { done <- app.Start(context.Background()) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not exit on input.Exit")
	}

	snap := store.Snapshot()
	if snap.Settings.Variant != shader.Animated {
		t.Fatalf("variant = %v, want animated", snap.Settings.Variant)
	}
	if !snap.Settings.Paused {
		t.Fatal("not paused")
	}
	if !snap.Settings.Overlay {
		t.Fatal("overlay not toggled")
	}
}

func TestFirstFrameRendersImmediately(t *testing.T) {
	store := state.NewStore(state.Settings{})
	r := &countingRenderer{}
	app := New(store, r, &web.NoopServer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if r.count() < 1 {
		t.Fatal("no immediate first frame")
	}
}

func TestExitIsIdempotent(t *testing.T) {
	store := state.NewStore(state.Settings{})
	app := New(store, &render.NoopRenderer{}, &web.NoopServer{}, nil)
	done := make(chan error, 1)
	go func() { done <- app.Start(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	app.Exit(nil)
	app.Exit(errors.New("second call must not override"))
	if err := <-done; err != nil {
		t.Fatalf("err = %v, want nil from first Exit", err)
	}
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("fb", "frame %d", 7)
	l.Errorf("tty", "oops")
	out := buf.String()
	if !strings.Contains(out, "[INFO] fb: frame 7") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] tty: oops") {
		t.Fatalf("missing error line: %q", out)
	}
}
