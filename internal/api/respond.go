package api

import "github.com/gofiber/fiber/v2"

// Article and admin routes answer errors as {error, code, message, field?};
// journalist routes answer {success, error}. The two envelopes predate each
// other and clients depend on both shapes, so they stay distinct.

func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"code":    code,
		"message": message,
	})
}

func apiFieldError(c *fiber.Ctx, status int, code, message, field string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"code":    code,
		"message": message,
		"field":   field,
	})
}

func journalistError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
