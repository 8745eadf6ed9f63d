// Package cachecontrol maps named caching strategies onto the
// Cache-Control header family. The directive string is duplicated across the
// canonical header and the CDN-specific synonyms the deployment target reads.
package cachecontrol

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Strategy names a caching profile
type Strategy string

const (
	// List is for paginated listings: content changes frequently
	List Strategy = "LIST"
	// Detail is for individual items: changes less often
	Detail Strategy = "DETAIL"
	// Static is for rarely changing content
	Static Strategy = "STATIC"
	// None disables caching entirely (health checks, mutations)
	None Strategy = "NONE"
)

type profile struct {
	maxAge               int // browser cache, seconds
	sMaxAge              int // CDN cache, seconds
	staleWhileRevalidate int // serve stale while refreshing, seconds
}

var profiles = map[Strategy]profile{
	List:   {maxAge: 30, sMaxAge: 60, staleWhileRevalidate: 300},
	Detail: {maxAge: 60, sMaxAge: 120, staleWhileRevalidate: 600},
	Static: {maxAge: 300, sMaxAge: 3600, staleWhileRevalidate: 3600},
	None:   {},
}

// headerNames lists every header that carries the directive. CDN-Cache-Control
// and the Vercel variant override Cache-Control at their respective edges.
var headerNames = []string{
	"Cache-Control",
	"CDN-Cache-Control",
	"Vercel-CDN-Cache-Control",
}

// Directive returns the Cache-Control value for a strategy
func Directive(s Strategy) string {
	if s == None {
		return "no-store, no-cache, must-revalidate"
	}
	p := profiles[s]
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d, stale-while-revalidate=%d",
		p.maxAge, p.sMaxAge, p.staleWhileRevalidate)
}

// Headers returns the full header set for a strategy
func Headers(s Strategy) map[string]string {
	directive := Directive(s)
	headers := make(map[string]string, len(headerNames))
	for _, name := range headerNames {
		headers[name] = directive
	}
	return headers
}

// Apply writes the strategy's headers onto a response
func Apply(c *fiber.Ctx, s Strategy) {
	for name, value := range Headers(s) {
		c.Set(name, value)
	}
}
