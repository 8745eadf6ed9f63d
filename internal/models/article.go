package models

import "github.com/google/uuid"

// Article moderation statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusSpam     = "spam"
)

// AnonymousAuthorID is the shared sentinel author used for submissions that
// carry no byline, so anonymous posts do not create a row each.
var AnonymousAuthorID = uuid.Nil.String()

// Article is a row in the articles table
type Article struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	NormalizedTitle string  `json:"normalized_title,omitempty"`
	Excerpt         string  `json:"excerpt,omitempty"`
	Content         string  `json:"content,omitempty"`
	AuthorID        *string `json:"author_id,omitempty"`
	CategoryID      *string `json:"category_id,omitempty"`
	FeaturedImage   string  `json:"featured_image,omitempty"`
	Published       bool    `json:"published,omitempty"`
	PublishedAt     string  `json:"published_at,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
	Views           int64   `json:"views"`
	Score           *int64  `json:"score,omitempty"`
	Status          string  `json:"status,omitempty"`

	// ContentHTML is rendered from Content at display time and never stored,
	// so rendering changes apply to existing articles.
	ContentHTML string `json:"content_html,omitempty"`

	// Embedded relations, present when the query asks for them
	Author   *Author   `json:"author,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Author is the public byline attached to an article
type Author struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Bio            *string `json:"bio,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	MoltbookHandle *string `json:"moltbook_handle,omitempty"`
	JournalistID   *string `json:"journalist_id,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// Category is one of the fixed, externally seeded article categories
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}
