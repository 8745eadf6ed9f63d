package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/times/internal/cache"
	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/models"
	"github.com/openclaw/times/internal/store"
)

// ErrDuplicateTitle means another article already has the same normalized title
var ErrDuplicateTitle = errors.New("articles: duplicate title")

const excerptAutoLen = 280

// Pipeline turns validated submissions into pending articles and moves them
// through moderation.
type Pipeline struct {
	store       *store.Client
	cache       cache.Cache
	categoryTTL time.Duration
	now         func() time.Time
}

// NewPipeline wires the moderation pipeline to the datastore and the
// category cache.
func NewPipeline(st *store.Client, ca cache.Cache, categoryTTL time.Duration) *Pipeline {
	return &Pipeline{
		store:       st,
		cache:       ca,
		categoryTTL: categoryTTL,
		now:         time.Now,
	}
}

// SubmitResult identifies the article created by a submission
type SubmitResult struct {
	ID    string
	Slug  string
	Title string
}

// Submit persists a validated submission as a pending article.
//
// The duplicate check is read-then-insert with no transactional guard: two
// concurrent submissions with the same normalized title can both pass it and
// both land. Known race, kept as is.
func (p *Pipeline) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	title := StripHTML(strings.TrimSpace(req.Title))
	normalized := NormalizeTitle(title)

	exists, err := p.store.ArticleExistsByNormalizedTitle(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	authorID := p.resolveAuthor(ctx, strings.TrimSpace(req.AuthorName))
	categoryID := p.resolveCategory(ctx, req.Section)

	now := p.now()
	content := strings.TrimSpace(req.Content)

	excerpt := strings.TrimSpace(req.Excerpt)
	if excerpt == "" {
		excerpt = autoExcerpt(content)
	}

	image := req.FeaturedImage
	if image == "" {
		image = FeaturedImageURL(req.Section, title)
	}

	article, err := p.store.InsertArticle(ctx, store.ArticleInsert{
		Title:           title,
		Slug:            NewSlug(title, now),
		NormalizedTitle: normalized,
		Excerpt:         excerpt,
		Content:         content,
		AuthorID:        &authorID,
		CategoryID:      categoryID,
		FeaturedImage:   image,
		Published:       true,
		PublishedAt:     now.UTC().Format(time.RFC3339),
		Status:          models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	return &SubmitResult{
		ID:    article.ID,
		Slug:  article.Slug,
		Title: article.Title,
	}, nil
}

// resolveAuthor maps a byline to an author id. No name means the shared
// anonymous sentinel; a known name is reused; an unknown one gets a row.
// Resolution failures degrade to the sentinel instead of losing the article.
func (p *Pipeline) resolveAuthor(ctx context.Context, name string) string {
	if name == "" {
		return models.AnonymousAuthorID
	}

	author, err := p.store.FindAuthorByName(ctx, name)
	if err == nil {
		return author.ID
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.Get().Error().Err(err).Str("name", name).Msg("author lookup failed")
		return models.AnonymousAuthorID
	}

	created, err := p.store.InsertAuthor(ctx, store.AuthorInsert{Name: name})
	if err != nil {
		logger.Get().Error().Err(err).Str("name", name).Msg("author create failed")
		return models.AnonymousAuthorID
	}
	return created.ID
}

// resolveCategory maps a section to its category id through the read-through
// cache. The category reference is nullable, so failures resolve to nil.
func (p *Pipeline) resolveCategory(ctx context.Context, section string) *string {
	slug := SectionCategorySlug(section)
	key := "category:" + slug

	if id, err := p.cache.Get(ctx, key); err == nil {
		return &id
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn().Err(err).Str("slug", slug).Msg("category cache read failed")
	}

	category, err := p.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		logger.Get().Error().Err(err).Str("slug", slug).Msg("category lookup failed")
		return nil
	}

	if err := p.cache.Set(ctx, key, category.ID, p.categoryTTL); err != nil {
		logger.Get().Warn().Err(err).Str("slug", slug).Msg("category cache write failed")
	}
	return &category.ID
}

func autoExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptAutoLen {
		return content + "..."
	}
	return string(runes[:excerptAutoLen]) + "..."
}

// Moderation actions and the statuses they produce
var actionStatus = map[string]string{
	"approve": models.StatusApproved,
	"reject":  models.StatusRejected,
	"spam":    models.StatusSpam,
}

// ModerationStatus resolves a moderation action to its target status
func ModerationStatus(action string) (string, bool) {
	status, ok := actionStatus[action]
	return status, ok
}

// Moderate applies a status transition. Transitions are overwrites: moving an
// already-decided article again is allowed, there is no undo.
func (p *Pipeline) Moderate(ctx context.Context, articleID, action string) (*models.Article, error) {
	status, ok := ModerationStatus(action)
	if !ok {
		return nil, fmt.Errorf("articles: unknown moderation action %q", action)
	}
	return p.store.UpdateArticleStatus(ctx, articleID, status)
}

// Pending returns the moderation queue, oldest first
func (p *Pipeline) Pending(ctx context.Context) ([]models.Article, error) {
	return p.store.ListPendingArticles(ctx)
}
