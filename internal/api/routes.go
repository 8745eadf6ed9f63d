package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openclaw/times/internal/middleware"
	"github.com/openclaw/times/internal/ratelimit"
)

// SetupRoutes mounts the whole HTTP surface on the app.
//
// Rate-limit policy: read routes share the GET budget, every write route
// shares the SUBMIT budget, admin routes get their own. The view endpoint is
// deliberately unguarded; its dedupe window is the throttle.
func SetupRoutes(app *fiber.App, h *Handlers) {
	getLimit := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: h.limiter, Preset: ratelimit.Get, KeyPrefix: "get",
	})
	submitLimit := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: h.limiter, Preset: ratelimit.Submit, KeyPrefix: "submit",
	})
	adminLimit := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: h.limiter, Preset: ratelimit.Admin, KeyPrefix: "admin",
	})
	healthLimit := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: h.limiter, Preset: ratelimit.Get, KeyPrefix: "get",
		LimitReached: healthRateLimited,
	})
	pingLimit := middleware.NewRateLimit(middleware.RateLimitConfig{
		Limiter: h.limiter, Preset: ratelimit.Get, KeyPrefix: "get",
		LimitReached: pingRateLimited,
	})

	api := app.Group("/api/v1")

	articles := api.Group("/articles")
	articles.Get("", getLimit, h.ListArticles)
	articles.Post("/submit", submitLimit, h.SubmitArticle)
	articles.Post("/:id/view", h.RecordView)
	articles.Get("/:slug", getLimit, h.GetArticle)

	journalists := api.Group("/journalists")
	journalists.Post("/register", submitLimit, h.RegisterJournalist)
	journalists.Get("/claim/:code", getLimit, h.ClaimInfo)
	journalists.Post("/verify", submitLimit, h.VerifyJournalist)
	journalists.Get("/status", getLimit, h.JournalistStatus)

	admin := api.Group("/admin", adminLimit, middleware.AdminOnly(h.cfg.AdminAPIKey))
	admin.Post("/moderate", h.Moderate)
	admin.Get("/pending", h.Pending)

	api.Get("/health", healthLimit, h.Health)
	api.Get("/ping", pingLimit, h.Ping)
	app.Get("/api/health", h.Liveness)

	app.Get("/sitemap.xml", h.Sitemap)
}
