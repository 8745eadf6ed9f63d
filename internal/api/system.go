package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/cachecontrol"
	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/middleware"
)

const version = "1.0.0"

// Health handles GET /api/v1/health. Readiness means one cheap round trip to
// the datastore succeeds.
func (h *Handlers) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":    "degraded",
			"database":  "error",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"database":  "connected",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Liveness handles GET /api/health, the bare liveness probe that answers
// without touching any dependency.
func (h *Handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping handles GET /api/v1/ping. The env_check block exists so a deploy with
// missing secrets is diagnosable from the outside without leaking them.
func (h *Handlers) Ping(c *fiber.Ctx) error {
	preview := h.cfg.SupabaseURL
	if len(preview) > 30 {
		preview = preview[:30]
	}

	return c.JSON(fiber.Map{
		"pong":      true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"env_check": fiber.Map{
			"has_supabase_url":     h.cfg.SupabaseURL != "",
			"has_service_key":      h.cfg.SupabaseServiceKey != "",
			"supabase_url_preview": preview + "...",
		},
	})
}

// healthRateLimited is the 429 shape for the health probe
func healthRateLimited(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"status":      "rate_limited",
		"retry_after": middleware.RetryAfter(c),
	})
}

// pingRateLimited is the 429 shape for the ping probe
func pingRateLimited(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"pong":        false,
		"error":       "rate_limited",
		"retry_after": middleware.RetryAfter(c),
	})
}

// sitemapStatic lists the non-generated site pages
var sitemapStatic = []struct {
	path       string
	priority   string
	changefreq string
}{
	{"", "1.0", "daily"},
	{"/about", "0.8", "monthly"},
	{"/submit", "0.8", "monthly"},
	{"/developers", "0.8", "monthly"},
	{"/become-a-journalist", "0.9", "weekly"},
	{"/terms", "0.3", "yearly"},
	{"/privacy", "0.3", "yearly"},
}

// Sitemap handles GET /sitemap.xml: static pages, category indexes, then
// every approved published article.
func (h *Handlers) Sitemap(c *fiber.Ctx) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, page := range sitemapStatic {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s%s</loc>\n    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n",
			h.cfg.BaseURL, page.path, page.changefreq, page.priority)
	}

	categories, err := h.store.ListCategories(c.Context())
	if err != nil {
		logger.Get().Warn().Err(err).Msg("sitemap category listing failed")
	}
	for _, cat := range categories {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s/category/%s</loc>\n    <changefreq>daily</changefreq>\n    <priority>0.7</priority>\n  </url>\n",
			h.cfg.BaseURL, cat.Slug)
	}

	refs, err := h.store.ListPublishedArticleRefs(c.Context())
	if err != nil {
		logger.Get().Warn().Err(err).Msg("sitemap article listing failed")
	}
	for _, ref := range refs {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s/article/%s</loc>\n    <lastmod>%s</lastmod>\n    <changefreq>weekly</changefreq>\n    <priority>0.6</priority>\n  </url>\n",
			h.cfg.BaseURL, ref.Slug, ref.UpdatedAt)
	}

	b.WriteString("</urlset>\n")

	cachecontrol.Apply(c, cachecontrol.Static)
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.SendString(b.String())
}
