// The simulator runs the full render pipeline offscreen with the same
// control API as the device, for development on machines without a
// framebuffer. Frames are viewable at /api/v1/frame.png or dumped to disk.
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
	"github.com/glowbox/backdrop/internal/render"
	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
	"github.com/glowbox/backdrop/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	variantName := flag.String("variant", "animated", "gradient variant: static | animated")
	width := flag.Int("width", render.CanvasWidth, "canvas width")
	height := flag.Int("height", render.CanvasHeight, "canvas height")
	fps := flag.Int("fps", render.DefaultFPS, "frame rate")
	workers := flag.Int("workers", 0, "shading goroutines per frame; 0 means GOMAXPROCS")
	dumpDir := flag.String("dump", "", "write numbered PNG frames to this directory")
	flag.Parse()

	variant, err := shader.ParseVariant(*variantName)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(state.Settings{Variant: variant, Overlay: true})
	logger := app.NewFileLogger(os.Stdout)

	overlay := render.NewOverlay()
	overlay.Logger = logger

	renderer := render.NewImageRenderer(*width, *height)
	renderer.FPS = *fps
	renderer.Workers = *workers
	renderer.Overlay = overlay
	renderer.Logger = logger
	renderer.DumpDir = *dumpDir

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Handler = web.NewDefaultMux(web.APIV1Config{
		Store:    store,
		Started:  time.Now(),
		FramePNG: renderer.LatestPNG,
	})

	application := app.New(store, renderer, server, nil)
	application.Logger = logger

	fmt.Println("backdrop simulator listening on", *listenAddr)
	fmt.Printf("canvas %dx%d, variant %s\n", *width, *height, variant)
	fmt.Println("frame: http://" + displayHost(*listenAddr) + "/api/v1/frame.png")

	if err := application.Start(processCtx); err != nil && err != context.Canceled {
		fmt.Println("simulator exited:", err)
		os.Exit(1)
	}
}

// displayHost turns a listen address into something printable as a URL host.
func displayHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
