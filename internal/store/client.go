package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/openclaw/times/internal/config"
)

// ErrNotFound is returned when a filter matches no rows
var ErrNotFound = errors.New("store: not found")

// Client talks to the Supabase REST (PostgREST) endpoint. Rows are addressed
// by table name and filtered with column=op.value query parameters; writes
// ask for the affected rows back via Prefer: return=representation.
type Client struct {
	http    *resty.Client
	restURL string
}

// New creates a datastore client. Config validation has already happened at
// startup, so the URL and key are known to be present here.
func New(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(cfg.StoreTimeout).
		SetHeader("apikey", cfg.SupabaseServiceKey).
		SetHeader("Authorization", "Bearer "+cfg.SupabaseServiceKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:    httpClient,
		restURL: strings.TrimRight(cfg.SupabaseURL, "/") + "/rest/v1",
	}
}

func (c *Client) tableURL(table string) string {
	return c.restURL + "/" + table
}

// selectRows runs a filtered select against a table and decodes the matching
// rows into dest, which must be a pointer to a slice.
func (c *Client) selectRows(ctx context.Context, table string, params url.Values, dest interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(dest).
		Get(c.tableURL(table))
	if err != nil {
		return fmt.Errorf("store: select %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("store: select %s: status %d: %s", table, resp.StatusCode(), resp.String())
	}
	return nil
}

// selectRowsWithCount is selectRows plus item-range pagination and an exact
// total row count parsed from the Content-Range response header.
func (c *Client) selectRowsWithCount(ctx context.Context, table string, params url.Values, offset, limit int, dest interface{}) (int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetHeader("Prefer", "count=exact").
		SetHeader("Range-Unit", "items").
		SetHeader("Range", fmt.Sprintf("%d-%d", offset, offset+limit-1)).
		SetResult(dest).
		Get(c.tableURL(table))
	if err != nil {
		return 0, fmt.Errorf("store: select %s: %w", table, err)
	}
	// PostgREST answers 206 Partial Content for ranged selects
	if resp.IsError() {
		return 0, fmt.Errorf("store: select %s: status %d: %s", table, resp.StatusCode(), resp.String())
	}
	return parseContentRangeTotal(resp.Header().Get("Content-Range")), nil
}

// insertRow inserts a single row and decodes the stored representation into
// dest (pointer to a slice; PostgREST always returns an array).
func (c *Client) insertRow(ctx context.Context, table string, body interface{}, dest interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(dest).
		Post(c.tableURL(table))
	if err != nil {
		return fmt.Errorf("store: insert %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("store: insert %s: status %d: %s", table, resp.StatusCode(), resp.String())
	}
	return nil
}

// updateRows patches all rows matching params and decodes the updated rows
// into dest (pointer to a slice). Matching no rows is not an error here;
// callers translate the empty result.
func (c *Client) updateRows(ctx context.Context, table string, params url.Values, body interface{}, dest interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(dest).
		Patch(c.tableURL(table))
	if err != nil {
		return fmt.Errorf("store: update %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("store: update %s: status %d: %s", table, resp.StatusCode(), resp.String())
	}
	return nil
}

// rpc invokes a stored procedure by name
func (c *Client) rpc(ctx context.Context, name string, body interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.restURL + "/rpc/" + name)
	if err != nil {
		return fmt.Errorf("store: rpc %s: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("store: rpc %s: status %d: %s", name, resp.StatusCode(), resp.String())
	}
	return nil
}

// parseContentRangeTotal extracts the total from a "0-9/42" style header.
// "*/0" (empty result set) and malformed values both yield zero.
func parseContentRangeTotal(header string) int {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0
	}
	total, err := strconv.Atoi(header[idx+1:])
	if err != nil {
		return 0
	}
	return total
}
