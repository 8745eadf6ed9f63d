package store

import (
	"context"
	"net/url"

	"github.com/openclaw/times/internal/models"
)

// GetCategoryBySlug looks up one of the fixed categories
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	params := url.Values{}
	params.Set("select", "id,name,slug,description,color")
	params.Set("slug", "eq."+slug)
	params.Set("limit", "1")

	var categories []models.Category
	if err := c.selectRows(ctx, "categories", params, &categories); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return &categories[0], nil
}

// ListCategories returns every category row
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	params := url.Values{}
	params.Set("select", "id,name,slug,description,color")

	var categories []models.Category
	if err := c.selectRows(ctx, "categories", params, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryInsert is the writable subset of a category row
type CategoryInsert struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// InsertCategory creates a category row and returns it
func (c *Client) InsertCategory(ctx context.Context, row CategoryInsert) (*models.Category, error) {
	var inserted []models.Category
	if err := c.insertRow(ctx, "categories", row, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, ErrNotFound
	}
	return &inserted[0], nil
}

// Ping runs the cheapest possible select to prove the datastore is reachable
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	return c.selectRows(ctx, "categories", params, &rows)
}
