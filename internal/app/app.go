package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glowbox/backdrop/internal/input"
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/state"
	"github.com/glowbox/backdrop/internal/system"
	"github.com/glowbox/backdrop/internal/web"
)

type App struct {
	Store  *state.Store
	Render render.Renderer
	Web    web.Server
	Input  input.Input
	Logger Logger

	// GraphicsConsole switches the VT to KD_GRAPHICS for the duration of the
	// run. Only wanted for framebuffer output.
	GraphicsConsole bool

	// Clock is the frame clock; exposed so the frame.png endpoint can render
	// at the loop's current elapsed time.
	Clock *render.Clock

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, in input.Input) *App {
	return &App{
		Store:  store,
		Render: renderer,
		Web:    webServer,
		Input:  in,
		Logger: NoopLogger{},
		Clock:  render.NewClock(),
		exitCh: make(chan error, 1),
	}
}

// Exit requests the app to stop running. Safe to call from any goroutine;
// only the first call wins.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the frame loop until the context is cancelled or Exit is
// called. It owns the renderer and input lifecycles.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		return fmt.Errorf("no renderer configured")
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	// The control API is best-effort: rendering continues without it.
	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
		}
		defer app.Web.Stop()
	}

	if app.GraphicsConsole {
		if err := system.SetGraphicsModeWithLog(app.Logger); err != nil {
			app.Logger.Errorf("tty", "set graphics mode failed: %v", err)
		}
		_ = system.HideCursorWithLog(app.Logger)
		defer func() {
			_ = system.ShowCursorWithLog(app.Logger)
			_ = system.RestoreTextModeWithLog(app.Logger)
		}()
	}

	if app.Input != nil {
		if err := app.Input.Start(ctx); err != nil {
			app.Logger.Errorf("input", "start error: %v", err)
		}
		defer app.Input.Stop()
	}

	// Immediate first frame so the screen is not blank until the first tick.
	clock := app.Clock
	if clock == nil {
		clock = render.NewClock()
	}
	app.Render.RedrawAt(app.Store.Snapshot(), clock.Elapsed())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store, clock)
	}()

	if app.Input != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.handleInput(loopCtx)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) handleInput(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-app.Input.Events():
			if !ok {
				return
			}
			switch ev {
			case input.TogglePause:
				paused := app.Store.TogglePaused()
				app.Logger.Infof("app", "paused=%v", paused)
			case input.CycleVariant:
				v := app.Store.CycleVariant()
				app.Logger.Infof("app", "variant=%s", v)
			case input.ToggleOverlay:
				enabled := app.Store.ToggleOverlay()
				app.Logger.Infof("app", "overlay=%v", enabled)
			case input.Exit:
				app.Logger.Infof("app", "exit requested by input")
				app.Exit(nil)
			}
		}
	}
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
