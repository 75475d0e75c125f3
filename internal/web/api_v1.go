package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/glowbox/backdrop/internal/shader"
	"github.com/glowbox/backdrop/internal/state"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Variant string  `json:"variant"`
	Paused  bool    `json:"paused"`
	Overlay bool    `json:"overlay"`
	FPS     float64 `json:"fps"`
	Frames  uint64  `json:"frames"`
	Uptime  string  `json:"uptime"`
	URL     string  `json:"url,omitempty"`
}

// APIV1Config carries what the handlers need from the host: the settings
// store, an on-demand frame encoder and the process start time.
type APIV1Config struct {
	Store    *state.Store
	FramePNG func() ([]byte, error)
	Started  time.Time
}

func apiV1Router(cfg APIV1Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, cfg) })
	mux.HandleFunc("/variant", func(w http.ResponseWriter, r *http.Request) { handleVariant(w, r, cfg) })
	mux.HandleFunc("/pause", func(w http.ResponseWriter, r *http.Request) { handlePause(w, r, cfg, true) })
	mux.HandleFunc("/resume", func(w http.ResponseWriter, r *http.Request) { handlePause(w, r, cfg, false) })
	mux.HandleFunc("/overlay", func(w http.ResponseWriter, r *http.Request) { handleOverlay(w, r, cfg) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFramePNG(w, r, cfg) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "store not configured")
		return
	}
	snap := cfg.Store.Snapshot()
	resp := statusResponse{
		Variant: snap.Settings.Variant.String(),
		Paused:  snap.Settings.Paused,
		Overlay: snap.Settings.Overlay,
		FPS:     snap.Stats.FPS,
		Frames:  snap.Stats.Frames,
		URL:     snap.Network.URL,
	}
	if !cfg.Started.IsZero() {
		resp.Uptime = time.Since(cfg.Started).Truncate(time.Second).String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleVariant(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "store not configured")
		return
	}
	var body struct {
		Variant string `json:"variant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	v, err := shader.ParseVariant(body.Variant)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "unknown_variant", err.Error())
		return
	}
	cfg.Store.SetVariant(v)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handlePause(w http.ResponseWriter, r *http.Request, cfg APIV1Config, paused bool) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "store not configured")
		return
	}
	cfg.Store.SetPaused(paused)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleOverlay(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "store not configured")
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	cfg.Store.SetOverlay(body.Enabled)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleFramePNG(w http.ResponseWriter, r *http.Request, cfg APIV1Config) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.FramePNG == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frame capture not configured")
		return
	}
	data, err := cfg.FramePNG()
	if err != nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
