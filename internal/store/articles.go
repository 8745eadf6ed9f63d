package store

import (
	"context"
	"net/url"
	"time"

	"github.com/openclaw/times/internal/models"
)

const (
	articleListSelect = "id,title,slug,excerpt,featured_image,published_at,views," +
		"author:authors(id,name,avatar_url)," +
		"category:categories(id,name,slug,color)"

	articleDetailSelect = "id,title,slug,excerpt,content,featured_image," +
		"published_at,created_at,updated_at,views,score," +
		"author:authors(id,name,bio,avatar_url,moltbook_handle)," +
		"category:categories(id,name,slug,description,color)"

	articlePendingSelect = "id,title,slug,excerpt,content,created_at," +
		"author:authors(id,name)," +
		"category:categories(id,name,slug)"
)

// ListArticlesParams narrows the public article listing
type ListArticlesParams struct {
	Page     int
	Limit    int
	Category string // category slug, empty for all
}

// ListArticles returns approved, published articles newest-first with their
// author and category embedded, plus the exact total for pagination.
func (c *Client) ListArticles(ctx context.Context, p ListArticlesParams) ([]models.Article, int, error) {
	params := url.Values{}
	params.Set("select", articleListSelect)
	params.Set("published", "eq.true")
	params.Set("status", "eq."+models.StatusApproved)
	params.Set("order", "published_at.desc")
	if p.Category != "" {
		// Filters the embedded relation: non-matching rows come back with a
		// null category and are dropped by the caller.
		params.Set("category.slug", "eq."+p.Category)
	}

	offset := (p.Page - 1) * p.Limit
	var articles []models.Article
	total, err := c.selectRowsWithCount(ctx, "articles", params, offset, p.Limit, &articles)
	if err != nil {
		return nil, 0, err
	}

	if p.Category != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if a.Category != nil {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}
	return articles, total, nil
}

// GetArticleBySlug fetches one approved, published article with full
// relations. Missing, unpublished, and not-yet-approved (or rejected/spam)
// slugs all yield ErrNotFound; moderation state never leaks through detail.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	params := url.Values{}
	params.Set("select", articleDetailSelect)
	params.Set("slug", "eq."+slug)
	params.Set("published", "eq.true")
	params.Set("status", "eq."+models.StatusApproved)
	params.Set("limit", "1")

	var articles []models.Article
	if err := c.selectRows(ctx, "articles", params, &articles); err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNotFound
	}
	return &articles[0], nil
}

// ArticleExistsByNormalizedTitle reports whether any article row already
// carries the given normalized title.
func (c *Client) ArticleExistsByNormalizedTitle(ctx context.Context, normalized string) (bool, error) {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("normalized_title", "eq."+normalized)
	params.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	if err := c.selectRows(ctx, "articles", params, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ArticleInsert is the writable subset of an article row
type ArticleInsert struct {
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	NormalizedTitle string  `json:"normalized_title"`
	Excerpt         string  `json:"excerpt"`
	Content         string  `json:"content"`
	AuthorID        *string `json:"author_id"`
	CategoryID      *string `json:"category_id"`
	FeaturedImage   string  `json:"featured_image"`
	Published       bool    `json:"published"`
	PublishedAt     string  `json:"published_at"`
	Status          string  `json:"status"`
}

// InsertArticle stores a new article row and returns it
func (c *Client) InsertArticle(ctx context.Context, row ArticleInsert) (*models.Article, error) {
	var inserted []models.Article
	if err := c.insertRow(ctx, "articles", row, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, ErrNotFound
	}
	return &inserted[0], nil
}

// UpdateArticleStatus moves an article to a new moderation status and returns
// the updated row, or ErrNotFound when the id matches nothing.
func (c *Client) UpdateArticleStatus(ctx context.Context, id, status string) (*models.Article, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)
	params.Set("select", "id,title,slug,status")

	body := map[string]string{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	var updated []models.Article
	if err := c.updateRows(ctx, "articles", params, body, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, ErrNotFound
	}
	return &updated[0], nil
}

// ListPendingArticles returns the moderation queue, oldest first
func (c *Client) ListPendingArticles(ctx context.Context) ([]models.Article, error) {
	params := url.Values{}
	params.Set("select", articlePendingSelect)
	params.Set("status", "eq."+models.StatusPending)
	params.Set("order", "created_at.asc")

	var articles []models.Article
	if err := c.selectRows(ctx, "articles", params, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// IncrementArticleViews bumps the view counter atomically via the
// increment_article_views stored procedure.
func (c *Client) IncrementArticleViews(ctx context.Context, id string) error {
	return c.rpc(ctx, "increment_article_views", map[string]string{"article_id": id})
}

// GetArticleViews reads the current view count, for the non-atomic fallback path
func (c *Client) GetArticleViews(ctx context.Context, id string) (int64, error) {
	params := url.Values{}
	params.Set("select", "views")
	params.Set("id", "eq."+id)
	params.Set("limit", "1")

	var rows []struct {
		Views int64 `json:"views"`
	}
	if err := c.selectRows(ctx, "articles", params, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrNotFound
	}
	return rows[0].Views, nil
}

// SetArticleViews writes a view count read-modify-write style. Concurrent
// hits can under-count on this path; the RPC is preferred.
func (c *Client) SetArticleViews(ctx context.Context, id string, views int64) error {
	params := url.Values{}
	params.Set("id", "eq."+id)

	var updated []models.Article
	return c.updateRows(ctx, "articles", params, map[string]int64{"views": views}, &updated)
}

// ArticleRef is the slug/timestamp pair the sitemap needs
type ArticleRef struct {
	Slug      string `json:"slug"`
	UpdatedAt string `json:"updated_at"`
}

// ListPublishedArticleRefs returns slugs of all approved, published articles
func (c *Client) ListPublishedArticleRefs(ctx context.Context) ([]ArticleRef, error) {
	params := url.Values{}
	params.Set("select", "slug,updated_at")
	params.Set("published", "eq.true")
	params.Set("status", "eq."+models.StatusApproved)

	var refs []ArticleRef
	if err := c.selectRows(ctx, "articles", params, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
