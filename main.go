package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowbox/backdrop/internal/app"
	"github.com/glowbox/backdrop/internal/input"
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
	"github.com/glowbox/backdrop/internal/system"
	"github.com/glowbox/backdrop/internal/term"
	"github.com/glowbox/backdrop/internal/web"
)

func main() {
	webDefaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	variantName := flag.String("variant", "animated", "gradient variant: static | animated")
	output := flag.String("output", "fb", "render target: fb | term")
	fbDevice := flag.String("fb", "/dev/fb0", "framebuffer device")
	fps := flag.Int("fps", render.DefaultFPS, "frame rate")
	workers := flag.Int("workers", 0, "shading goroutines per frame; 0 means GOMAXPROCS")
	listenAddr := flag.String("listen", webDefaults.ListenAddr, "control API listen address; also configurable via "+web.EnvListenAddr)
	fontPath := flag.String("font", "", "TTF/OTF font for the overlay status line (optional)")
	noOverlay := flag.Bool("no-overlay", false, "start with the HUD overlay disabled")
	debug := flag.Bool("debug", false, "enable debug logging to ./backdrop-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via BACKDROP_STDIO_LOG")
	flag.Parse()

	// Best-effort: capture panic stack traces to a file so crashes are
	// diagnosable when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("BACKDROP_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./backdrop-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	variant, err := shader.ParseVariant(*variantName)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	store := state.NewStore(state.Settings{Variant: variant, Overlay: !*noOverlay})

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	overlay := render.NewOverlay()
	overlay.Logger = logger
	if *fontPath != "" {
		if err := overlay.LoadFont(*fontPath); err != nil {
			logger.Errorf("main", "font load failed, using builtin: %v", err)
		}
	}
	if url, err := system.ControlURL(*listenAddr); err == nil {
		overlay.SetControlURL(url)
		ip, _ := system.PrimaryIPv4()
		store.UpdateNetwork(state.NetworkInfo{IP: ip, URL: url})
	} else {
		logger.Errorf("main", "control URL unavailable: %v", err)
	}

	var (
		renderer  render.Renderer
		keyboard  input.Input
		onConsole bool
	)
	switch *output {
	case "term":
		tr := term.NewRenderer()
		tr.FPS = *fps
		tr.Logger = logger
		renderer = tr
		// The terminal owns the keyboard while tcell runs.
		keyboard = tr
	case "fb":
		fr := render.NewFBRenderer()
		fr.Device = *fbDevice
		fr.FPS = *fps
		fr.Workers = *workers
		fr.Overlay = overlay
		fr.Logger = logger
		renderer = fr
		keyboard = input.NewKeyboard(logger)
		onConsole = true
	default:
		fmt.Println("unknown output:", *output)
		os.Exit(2)
	}

	application := app.New(store, renderer, nil, keyboard)
	application.Logger = logger
	application.GraphicsConsole = onConsole

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: webDefaults.DevMode})
	server.Handler = web.NewDefaultMux(web.APIV1Config{
		Store:   store,
		Started: time.Now(),
		FramePNG: func() ([]byte, error) {
			snap := store.Snapshot()
			img := render.FrameImage(render.CanvasWidth, render.CanvasHeight,
				snap.Settings.Variant, application.Clock.Elapsed(), *workers)
			return render.EncodePNG(img)
		},
	})
	application.Web = server

	if err := application.Start(processCtx); err != nil && err != context.Canceled {
		logger.Errorf("main", "exited with error: %v", err)
		fmt.Println("backdrop exited:", err)
		os.Exit(1)
	}
}
