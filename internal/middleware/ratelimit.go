package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/ratelimit"
)

// RateLimitConfig defines the config for the rate limit middleware
type RateLimitConfig struct {
	// Limiter is the shared fixed-window limiter. Required.
	Limiter *ratelimit.Limiter

	// Preset is the window configuration to enforce. Required.
	Preset ratelimit.Config

	// KeyPrefix namespaces this route class inside the shared limiter,
	// e.g. "get" or "submit".
	KeyPrefix string

	// LimitReached is executed when the limit is exceeded.
	// Optional. Default: 429 with the standard error envelope.
	LimitReached fiber.Handler
}

// NewRateLimit creates a middleware that checks the shared limiter, writes
// the X-RateLimit-* headers on every response, and rejects once the window
// budget is spent.
func NewRateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.LimitReached == nil {
		cfg.LimitReached = func(c *fiber.Ctx) error {
			retryAfter := c.Locals(retryAfterKey).(int64)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"code":        "RATE_LIMITED",
				"message":     "Too many requests, slow down",
				"retry_after": retryAfter,
			})
		}
	}

	return func(c *fiber.Ctx) error {
		key := cfg.KeyPrefix + ":" + ratelimit.ClientIP(c)
		result := cfg.Limiter.Check(key, cfg.Preset)

		c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

		if !result.Allowed {
			c.Locals(retryAfterKey, result.RetryAfter(time.Now()))
			return cfg.LimitReached(c)
		}

		return c.Next()
	}
}

// retryAfterKey is the locals key carrying the retry delay to LimitReached
const retryAfterKey = "rateLimitRetryAfter"

// RetryAfter reads the retry delay inside a LimitReached handler
func RetryAfter(c *fiber.Ctx) int64 {
	if v, ok := c.Locals(retryAfterKey).(int64); ok {
		return v
	}
	return 0
}
