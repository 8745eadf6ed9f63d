// Package api binds the domain services to the HTTP surface: routing,
// request decoding, response envelopes, and the per-route cache and
// rate-limit policy.
package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/openclaw/times/internal/articles"
	"github.com/openclaw/times/internal/cache"
	"github.com/openclaw/times/internal/config"
	"github.com/openclaw/times/internal/journalists"
	"github.com/openclaw/times/internal/ratelimit"
	"github.com/openclaw/times/internal/store"
	"github.com/openclaw/times/internal/views"
)

// Handlers carries the wired services all routes share
type Handlers struct {
	cfg         *config.Config
	store       *store.Client
	pipeline    *articles.Pipeline
	journalists *journalists.Service
	views       *views.Counter
	limiter     *ratelimit.Limiter
	validate    *validator.Validate
}

// NewHandlers wires the handler set. The limiter is shared across every
// route class so one client draws all its budgets from one place.
func NewHandlers(cfg *config.Config, st *store.Client, ca cache.Cache) *Handlers {
	v := validator.New()
	_ = v.RegisterValidation("journalistname", func(fl validator.FieldLevel) bool {
		return journalists.NameRe.MatchString(fl.Field().String())
	})

	return &Handlers{
		cfg:         cfg,
		store:       st,
		pipeline:    articles.NewPipeline(st, ca, cfg.CategoryCacheTTL),
		journalists: journalists.NewService(st),
		views:       views.New(st, cfg.ViewDedupeTTL),
		limiter:     ratelimit.New(),
		validate:    v,
	}
}
