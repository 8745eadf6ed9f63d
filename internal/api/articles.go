package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/openclaw/times/internal/articles"
	"github.com/openclaw/times/internal/cachecontrol"
	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/markdown"
	"github.com/openclaw/times/internal/ratelimit"
	"github.com/openclaw/times/internal/store"
)

const maxPageSize = 50

// ListArticles handles GET /api/v1/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	list, total, err := h.store.ListArticles(c.Context(), store.ListArticlesParams{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("article listing failed")
		return apiError(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Failed to fetch articles")
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	cachecontrol.Apply(c, cachecontrol.List)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"articles": list,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": totalPages,
			},
		},
	})
}

// GetArticle handles GET /api/v1/articles/:slug
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	article, err := h.store.GetArticleBySlug(c.Context(), c.Params("slug"))
	if errors.Is(err, store.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "NOT_FOUND", "Article not found")
	}
	if err != nil {
		logger.Get().Error().Err(err).Str("slug", c.Params("slug")).Msg("article fetch failed")
		return apiError(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Failed to fetch article")
	}

	article.ContentHTML = markdown.Render(article.Content)

	// Reads count as views. Recording happens off the request path so a slow
	// or failing counter never delays the article.
	clientKey := ratelimit.ClientIP(c)
	articleID := article.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.cfg.StoreTimeout)
		defer cancel()
		h.views.Record(ctx, articleID, clientKey)
	}()

	cachecontrol.Apply(c, cachecontrol.Detail)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    article,
	})
}

// SubmitArticle handles POST /api/v1/articles/submit
func (h *Handlers) SubmitArticle(c *fiber.Ctx) error {
	var req articles.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	if verr := articles.Validate(&req); verr != nil {
		if verr.Field != "" {
			return apiFieldError(c, fiber.StatusBadRequest, verr.Code, verr.Message, verr.Field)
		}
		return apiError(c, fiber.StatusBadRequest, verr.Code, verr.Message)
	}

	// Legacy clients send the byline as a header instead of a body field
	if strings.TrimSpace(req.AuthorName) == "" {
		req.AuthorName = c.Get("X-Author-Name")
	}

	result, err := h.pipeline.Submit(c.Context(), &req)
	if errors.Is(err, articles.ErrDuplicateTitle) {
		return apiError(c, fiber.StatusConflict, "DUPLICATE_TITLE",
			"An article with a similar title already exists")
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("article submission failed")
		return apiError(c, fiber.StatusInternalServerError, "SERVER_ERROR", "Failed to create article")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":    result.ID,
			"slug":  result.Slug,
			"title": result.Title,
			"url":   "/article/" + result.Slug,
		},
	})
}

// RecordView handles POST /api/v1/articles/:id/view. It always answers 200:
// a view that cannot be counted is not the client's problem.
func (h *Handlers) RecordView(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err == nil {
		h.views.Record(c.Context(), id, ratelimit.ClientIP(c))
	}
	return c.JSON(fiber.Map{"success": true})
}
