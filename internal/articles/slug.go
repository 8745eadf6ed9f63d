package articles

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

const slugBaseMax = 100

// Slugify turns a title into its url-safe form, capped to a bounded length
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.TrimSpace(slug)
	if len(slug) > slugBaseMax {
		slug = slug[:slugBaseMax]
	}
	return slug
}

// NewSlug appends a base36 millisecond timestamp to the slugified title.
// Collisions would need two identical titles in the same millisecond, which
// is unlikely enough to skip a uniqueness round trip.
func NewSlug(title string, now time.Time) string {
	return Slugify(title) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
