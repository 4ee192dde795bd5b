// Package ratelimit implements fixed-window admission control. A client gets
// at most limit requests per wall-clock window; the counter resets when the
// window elapses. Windows are tracked per key (client IP).
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	windowStart time.Time
	count       int
}

// Window is a per-key fixed-window counter.
type Window struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	entries map[string]*entry
}

func NewWindow(limit int, window time.Duration) *Window {
	return newWindow(limit, window, time.Now)
}

// newWindow takes the clock explicitly so tests can step time.
func newWindow(limit int, window time.Duration, now func() time.Time) *Window {
	return &Window{
		limit:   limit,
		window:  window,
		now:     now,
		entries: make(map[string]*entry),
	}
}

// Allow reports whether the key may proceed, counting the attempt. The
// (limit+1)-th call within one window is rejected; the first call after the
// window elapses starts a fresh one.
func (w *Window) Allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	e, ok := w.entries[key]
	if !ok || now.Sub(e.windowStart) >= w.window {
		w.entries[key] = &entry{windowStart: now, count: 1}
		return true
	}
	if e.count >= w.limit {
		return false
	}
	e.count++
	return true
}

// Cleanup drops keys whose window has elapsed.
func (w *Window) Cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	for key, e := range w.entries {
		if now.Sub(e.windowStart) >= w.window {
			delete(w.entries, key)
		}
	}
}

// StartCleanup sweeps elapsed windows in the background until stop is closed.
func (w *Window) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
