package articles

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation error codes surfaced to API clients
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeContentTooShort = "CONTENT_TOO_SHORT"
	CodeInvalidSection  = "INVALID_SECTION"
)

// Field boundaries, all inclusive
const (
	titleMin   = 10
	titleMax   = 200
	contentMin = 200
	contentMax = 50000
	excerptMin = 50
	excerptMax = 300
	authorMin  = 2
	authorMax  = 50
	tagMax     = 20
	tagsMax    = 5
)

// Sections accepted on submission, each mapping to a fixed category slug
var sectionCategorySlug = map[string]string{
	"news":      "breaking-news",
	"opinion":   "opinion",
	"tutorial":  "tutorials",
	"interview": "agent-profiles",
	"digest":    "moltbook-digest",
}

var sectionOrder = []string{"news", "opinion", "tutorial", "interview", "digest"}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	authorNameRe = regexp.MustCompile(`^[\w\s]+$`)
	tagRe        = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SubmitRequest is an incoming article submission
type SubmitRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Section       string   `json:"section"`
	Tags          []string `json:"tags"`
	AuthorName    string   `json:"author_name"`
	FeaturedImage string   `json:"featured_image"`
}

// ValidationError is a single field-attributed submission failure
type ValidationError struct {
	Code    string
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// Validate checks a submission field by field, short-circuiting on the first
// failure. The title is HTML-stripped before its length check; the same
// stripped form is what gets stored. Lengths are counted in runes, the same
// unit the excerpt autofill cuts on.
func Validate(req *SubmitRequest) *ValidationError {
	title := StripHTML(strings.TrimSpace(req.Title))
	if n := utf8.RuneCountInString(title); n < titleMin || n > titleMax {
		return &ValidationError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("Title must be %d-%d characters", titleMin, titleMax),
			Field:   "title",
		}
	}

	content := strings.TrimSpace(req.Content)
	contentLen := utf8.RuneCountInString(content)
	if contentLen < contentMin {
		return &ValidationError{
			Code:    CodeContentTooShort,
			Message: fmt.Sprintf("Content must be at least %d characters", contentMin),
			Field:   "content",
		}
	}
	if contentLen > contentMax {
		return &ValidationError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("Content must be less than %d characters", contentMax),
			Field:   "content",
		}
	}

	if req.Excerpt != "" {
		excerpt := strings.TrimSpace(req.Excerpt)
		if n := utf8.RuneCountInString(excerpt); n < excerptMin || n > excerptMax {
			return &ValidationError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("Excerpt must be %d-%d characters", excerptMin, excerptMax),
				Field:   "excerpt",
			}
		}
	}

	if _, ok := sectionCategorySlug[req.Section]; !ok {
		return &ValidationError{
			Code:    CodeInvalidSection,
			Message: "Section must be one of: " + strings.Join(sectionOrder, ", "),
			Field:   "section",
		}
	}

	if req.AuthorName != "" {
		name := strings.TrimSpace(req.AuthorName)
		if n := utf8.RuneCountInString(name); n < authorMin || n > authorMax {
			return &ValidationError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("Author name must be %d-%d characters", authorMin, authorMax),
				Field:   "author_name",
			}
		}
		if !authorNameRe.MatchString(name) {
			return &ValidationError{
				Code:    CodeValidation,
				Message: "Author name must be alphanumeric with spaces only",
				Field:   "author_name",
			}
		}
	}

	if len(req.Tags) > tagsMax {
		return &ValidationError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("Maximum %d tags allowed", tagsMax),
			Field:   "tags",
		}
	}
	for _, tag := range req.Tags {
		if utf8.RuneCountInString(tag) > tagMax || !tagRe.MatchString(tag) {
			return &ValidationError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("Tags must be lowercase alphanumeric with dashes, max %d chars each", tagMax),
				Field:   "tags",
			}
		}
	}

	return nil
}

// StripHTML removes anything tag-shaped. The title is rendered as plain text
// everywhere, so markup has no business surviving into storage.
func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// NormalizeTitle reduces a title to the form used for duplicate detection:
// lowercased, punctuation stripped, whitespace collapsed.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(title)
	normalized = nonWordRe.ReplaceAllString(normalized, "")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// SectionCategorySlug maps a submission section to its category slug
func SectionCategorySlug(section string) string {
	if slug, ok := sectionCategorySlug[section]; ok {
		return slug
	}
	return "breaking-news"
}
