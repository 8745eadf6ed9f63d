// Package views accumulates article view counts, best effort. A failure to
// record a view never fails or delays the request that triggered it.
package views

import (
	"context"
	"sync"
	"time"

	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/store"
)

// sweepInterval bounds how often expired dedupe entries are collected
const sweepInterval = 10 * time.Minute

// Counter deduplicates and records views. The dedupe map is per-process;
// separate instances each count their own traffic, which is accepted.
type Counter struct {
	store *store.Client

	mu        sync.Mutex
	seen      map[string]time.Time
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// New creates a counter whose dedupe window is ttl per (article, client) pair
func New(st *store.Client, ttl time.Duration) *Counter {
	return &Counter{
		store:     st,
		seen:      make(map[string]time.Time),
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Record counts one view of articleID by clientKey. Repeat hits inside the
// dedupe window are dropped. All datastore failures are logged and swallowed.
func (c *Counter) Record(ctx context.Context, articleID, clientKey string) {
	if !c.markSeen(articleID + "|" + clientKey) {
		return
	}
	c.increment(ctx, articleID)
}

// markSeen reports whether this pair is new within the window
func (c *Counter) markSeen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	if at, ok := c.seen[key]; ok && now.Sub(at) < c.ttl {
		return false
	}
	c.seen[key] = now
	return true
}

func (c *Counter) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.lastSweep = now
	for key, at := range c.seen {
		if now.Sub(at) >= c.ttl {
			delete(c.seen, key)
		}
	}
}

// increment prefers the atomic stored procedure and falls back to
// read-modify-write when the RPC is unavailable. The fallback can under-count
// under concurrent hits; views are not accounting data.
func (c *Counter) increment(ctx context.Context, articleID string) {
	if err := c.store.IncrementArticleViews(ctx, articleID); err == nil {
		return
	}

	current, err := c.store.GetArticleViews(ctx, articleID)
	if err != nil {
		logger.Get().Warn().Err(err).Str("article_id", articleID).Msg("view count read failed")
		return
	}
	if err := c.store.SetArticleViews(ctx, articleID, current+1); err != nil {
		logger.Get().Warn().Err(err).Str("article_id", articleID).Msg("view count write failed")
	}
}
