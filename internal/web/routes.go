package web

import (
	"net/http"
	"path/filepath"

	"github.com/glowbox/backdrop/internal/assets"
)

// RegisterAPIV1 registers the control API under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg)))
}

// RegisterUI serves the embedded control page at /.
func RegisterUI(mux *http.ServeMux) {
	mux.Handle("/", StaticUIHandler())
}

// NewDefaultMux builds the mux used by both the device and the simulator:
// - /api/v1/* for the control API
// - / for the embedded control page
func NewDefaultMux(cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux)
	return mux
}

// StaticUIHandler serves the embedded single-page control UI.
func StaticUIHandler() http.Handler {
	fileServer := http.FileServer(http.FS(assets.WebUI))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
