// Package ratelimit implements the fixed-window request limiter that gates
// the public API. Counters reset completely at the window boundary, so a
// burst straddling the boundary can admit up to twice the limit; that
// approximation is accepted, this is not a sliding window.
//
// State is a single in-process map. In a horizontally scaled deployment each
// instance enforces its own budget independently; known limitation.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Config describes one window
type Config struct {
	Limit  int           // max requests per window
	Window time.Duration // window duration
}

// Named presets for the API route classes
var (
	// Submit gates POST /api/v1/articles/submit: 10 per hour per client
	Submit = Config{Limit: 10, Window: time.Hour}
	// Get gates read routes: 100 per minute per client
	Get = Config{Limit: 100, Window: time.Minute}
	// Admin gates admin routes: 30 per minute per client
	Admin = Config{Limit: 30, Window: time.Minute}
)

// Result is the outcome of a single check
type Result struct {
	Allowed   bool
	Remaining int
	Limit     int
	Reset     int64 // unix seconds when the current window ends
}

// RetryAfter returns how many seconds the client should wait before retrying
func (r Result) RetryAfter(now time.Time) int64 {
	after := r.Reset - now.Unix()
	if after < 0 {
		return 0
	}
	return after
}

type entry struct {
	count   int
	resetAt time.Time
}

// sweepInterval bounds how often expired entries are collected. The sweep is
// lazy: it runs inside Check, never on a timer.
const sweepInterval = 10 * time.Minute

// Limiter holds fixed-window counters keyed by client identity. Construct one
// at process start and share it across handlers.
type Limiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time
	now       func() time.Time
}

// New creates an empty limiter
func New() *Limiter {
	return &Limiter{
		entries:   make(map[string]*entry),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Check records one request for key and reports whether it is allowed.
// The first request of a window always passes and opens a fresh window.
func (l *Limiter) Check(key string, cfg Config) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		resetAt := now.Add(cfg.Window)
		l.entries[key] = &entry{count: 1, resetAt: resetAt}
		return Result{
			Allowed:   true,
			Remaining: cfg.Limit - 1,
			Limit:     cfg.Limit,
			Reset:     resetAt.Unix(),
		}
	}

	if e.count >= cfg.Limit {
		return Result{
			Allowed:   false,
			Remaining: 0,
			Limit:     cfg.Limit,
			Reset:     e.resetAt.Unix(),
		}
	}

	e.count++
	return Result{
		Allowed:   true,
		Remaining: cfg.Limit - e.count,
		Limit:     cfg.Limit,
		Reset:     e.resetAt.Unix(),
	}
}

// sweep drops entries whose window already ended. Caller holds the lock.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

// HeaderReader is the subset of a request needed to identify the client
type HeaderReader interface {
	Get(key string, defaultValue ...string) string
}

// ClientIP extracts the client identity from proxy headers: first
// X-Forwarded-For hop, then X-Real-IP, then Cloudflare's header. Clients with
// none of these all share the "unknown" bucket.
func ClientIP(h HeaderReader) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); first != "" {
			return first
		}
	}
	if ip := h.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := h.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return "unknown"
}
