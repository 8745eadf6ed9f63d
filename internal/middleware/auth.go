package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/logger"
)

// AdminOnly gates a route group behind the server-held admin secret, passed
// as a bearer token. An empty configured key locks the routes entirely
// rather than leaving them open.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if authHeader == "" || adminKey == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(adminKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("unauthorized admin access attempt")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": true,
				"code":  "UNAUTHORIZED",
			})
		}

		return c.Next()
	}
}
