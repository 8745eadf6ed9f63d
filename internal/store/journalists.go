package store

import (
	"context"
	"net/url"
	"time"

	"github.com/openclaw/times/internal/models"
)

const journalistSelect = "id,name,description,api_key,claim_code,verification_code," +
	"status,claimed_by_twitter,claimed_at,articles_count,moltbook_handle,created_at,updated_at"

func (c *Client) findJournalist(ctx context.Context, column, value string) (*models.Journalist, error) {
	params := url.Values{}
	params.Set("select", journalistSelect)
	params.Set(column, "eq."+value)
	params.Set("limit", "1")

	var journalists []models.Journalist
	if err := c.selectRows(ctx, "journalists", params, &journalists); err != nil {
		return nil, err
	}
	if len(journalists) == 0 {
		return nil, ErrNotFound
	}
	return &journalists[0], nil
}

// FindJournalistByName looks up a journalist by its unique name
func (c *Client) FindJournalistByName(ctx context.Context, name string) (*models.Journalist, error) {
	return c.findJournalist(ctx, "name", name)
}

// FindJournalistByClaimCode resolves a one-time claim code
func (c *Client) FindJournalistByClaimCode(ctx context.Context, code string) (*models.Journalist, error) {
	return c.findJournalist(ctx, "claim_code", code)
}

// FindJournalistByAPIKey resolves an API credential
func (c *Client) FindJournalistByAPIKey(ctx context.Context, key string) (*models.Journalist, error) {
	return c.findJournalist(ctx, "api_key", key)
}

// JournalistInsert is the writable subset of a journalist row
type JournalistInsert struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	APIKey           string  `json:"api_key"`
	ClaimCode        string  `json:"claim_code"`
	VerificationCode string  `json:"verification_code"`
	Status           string  `json:"status"`
}

// InsertJournalist stores a freshly registered journalist and returns the row
func (c *Client) InsertJournalist(ctx context.Context, row JournalistInsert) (*models.Journalist, error) {
	var inserted []models.Journalist
	if err := c.insertRow(ctx, "journalists", row, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, ErrNotFound
	}
	return &inserted[0], nil
}

// MarkJournalistClaimed flips a journalist to claimed and records the bound
// handle and claim time.
func (c *Client) MarkJournalistClaimed(ctx context.Context, id, twitterHandle string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)

	now := time.Now().UTC().Format(time.RFC3339)
	body := map[string]string{
		"status":             models.JournalistClaimed,
		"claimed_by_twitter": twitterHandle,
		"claimed_at":         now,
		"updated_at":         now,
	}

	var updated []models.Journalist
	return c.updateRows(ctx, "journalists", params, body, &updated)
}
