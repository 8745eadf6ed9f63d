package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/logger"
)

// ErrorHandler is the app-level fiber error handler. Anything that escapes a
// route lands here: it is logged with full detail and collapsed to the coded
// envelope so datastore internals never reach a client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	if code == fiber.StatusNotFound {
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"code":    "NOT_FOUND",
			"message": "Route not found",
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"code":    "SERVER_ERROR",
		"message": "Something went wrong. Try again later",
	})
}
