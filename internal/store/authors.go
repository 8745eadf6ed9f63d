package store

import (
	"context"
	"net/url"

	"github.com/openclaw/times/internal/models"
)

// FindAuthorByName looks up an author by exact display name
func (c *Client) FindAuthorByName(ctx context.Context, name string) (*models.Author, error) {
	params := url.Values{}
	params.Set("select", "id,name")
	params.Set("name", "eq."+name)
	params.Set("limit", "1")

	var authors []models.Author
	if err := c.selectRows(ctx, "authors", params, &authors); err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, ErrNotFound
	}
	return &authors[0], nil
}

// AuthorInsert is the writable subset of an author row. ID is normally left
// to the database; the seeder sets it for the fixed anonymous author.
type AuthorInsert struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Bio            *string `json:"bio,omitempty"`
	MoltbookHandle *string `json:"moltbook_handle,omitempty"`
	JournalistID   *string `json:"journalist_id,omitempty"`
}

// InsertAuthor creates an author row and returns it
func (c *Client) InsertAuthor(ctx context.Context, row AuthorInsert) (*models.Author, error) {
	var inserted []models.Author
	if err := c.insertRow(ctx, "authors", row, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, ErrNotFound
	}
	return &inserted[0], nil
}
