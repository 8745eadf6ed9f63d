package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/models"
	"github.com/openclaw/times/internal/store"
)

// ModerateRequest is the admin moderation payload
type ModerateRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=approve reject spam"`
	Reason    string `json:"reason"`
}

// Moderate handles POST /api/v1/admin/moderate. Moderation is an overwrite:
// re-deciding an already-decided article is allowed.
func (h *Handlers) Moderate(c *fiber.Ctx) error {
	var req ModerateRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		message := "article_id and action are required"
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "oneof" {
			message = "action must be: approve, reject, or spam"
		}
		return apiError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", message)
	}

	article, err := h.pipeline.Moderate(c.Context(), req.ArticleID, req.Action)
	if errors.Is(err, store.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "NOT_FOUND", "Article not found")
	}
	if err != nil {
		logger.Get().Error().Err(err).Str("article_id", req.ArticleID).Msg("moderation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true,
			"code":  "SERVER_ERROR",
		})
	}

	var articleURL *string
	if article.Status == models.StatusApproved {
		u := "/article/" + article.Slug
		articleURL = &u
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":     article.ID,
			"title":  article.Title,
			"status": article.Status,
			"action": req.Action,
			"url":    articleURL,
		},
	})
}

// Pending handles GET /api/v1/admin/pending
func (h *Handlers) Pending(c *fiber.Ctx) error {
	list, err := h.pipeline.Pending(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("pending listing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true,
			"code":  "SERVER_ERROR",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"count":    len(list),
			"articles": list,
		},
	})
}
