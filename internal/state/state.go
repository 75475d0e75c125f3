package state

import (
	"sync"
	"time"

	"github.com/glowbox/backdrop/internal/shader"
)

// Settings is the user-controllable part of the state, mutated by the web
// API and keyboard input.
type Settings struct {
	Variant shader.Variant
	Paused  bool
	Overlay bool
}

// Stats is updated by the render loop after each frame.
type Stats struct {
	Frames       uint64
	FPS          float64
	LastFrameDur time.Duration
}

// NetworkInfo carries the reachable control URL, shown in the overlay QR.
type NetworkInfo struct {
	IP  string
	URL string
}

type State struct {
	Settings Settings
	Stats    Stats
	Network  NetworkInfo
}

// Store guards State behind a mutex and hands out snapshots. Frame rendering
// takes one snapshot per frame so every pixel of a frame sees the same
// settings.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore(settings Settings) *Store {
	return &Store{state: State{Settings: settings}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetVariant(v shader.Variant) {
	store.mu.Lock()
	store.state.Settings.Variant = v
	store.mu.Unlock()
}

// CycleVariant advances to the next variant and returns it.
func (store *Store) CycleVariant() shader.Variant {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Settings.Variant = store.state.Settings.Variant.Next()
	return store.state.Settings.Variant
}

func (store *Store) SetPaused(paused bool) {
	store.mu.Lock()
	store.state.Settings.Paused = paused
	store.mu.Unlock()
}

// TogglePaused flips the paused flag and returns the new value.
func (store *Store) TogglePaused() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Settings.Paused = !store.state.Settings.Paused
	return store.state.Settings.Paused
}

func (store *Store) SetOverlay(enabled bool) {
	store.mu.Lock()
	store.state.Settings.Overlay = enabled
	store.mu.Unlock()
}

func (store *Store) ToggleOverlay() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Settings.Overlay = !store.state.Settings.Overlay
	return store.state.Settings.Overlay
}

func (store *Store) UpdateStats(stats Stats) {
	store.mu.Lock()
	store.state.Stats = stats
	store.mu.Unlock()
}

// RecordFrame folds one frame duration into the stats. FPS is a smoothed
// estimate so the overlay does not flicker.
func (store *Store) RecordFrame(dur time.Duration) {
	store.mu.Lock()
	defer store.mu.Unlock()
	stats := &store.state.Stats
	stats.Frames++
	stats.LastFrameDur = dur
	if dur > 0 {
		instant := float64(time.Second) / float64(dur)
		if stats.FPS == 0 {
			stats.FPS = instant
		} else {
			stats.FPS = stats.FPS*0.9 + instant*0.1
		}
	}
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}
