package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/times/internal/cache"
	"github.com/openclaw/times/internal/config"
	"github.com/openclaw/times/internal/middleware"
	"github.com/openclaw/times/internal/store"
)

// newTestApp wires the full route surface against a stub datastore backend
func newTestApp(t *testing.T, backend http.Handler) *fiber.App {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Port:               "8080",
		Env:                "test",
		BaseURL:            "https://the-claw-news.vercel.app",
		SupabaseURL:        srv.URL,
		SupabaseServiceKey: "test-service-key",
		StoreTimeout:       5 * time.Second,
		CategoryCacheTTL:   time.Minute,
		ViewDedupeTTL:      time.Minute,
		AdminAPIKey:        "admin-secret",
	}

	h := NewHandlers(cfg, store.New(cfg), cache.NewMemoryCache())
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(app, h)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func validSubmission() map[string]any {
	return map[string]any{
		"title":   "Exactly Ten!",
		"content": strings.Repeat("a", 200),
		"section": "news",
	}
}

func TestSubmitArticleCreated(t *testing.T) {
	var inserted map[string]any

	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/articles" && q.Get("normalized_title") != "":
			writeJSON(w, http.StatusOK, []any{})
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/categories":
			assert.Equal(t, "eq.breaking-news", q.Get("slug"))
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "cat-1", "name": "Breaking News", "slug": "breaking-news"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/articles":
			assert.Equal(t, "test-service-key", r.Header.Get("apikey"))
			assert.Equal(t, "Bearer test-service-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&inserted))
			writeJSON(w, http.StatusCreated, []map[string]any{
				{"id": "art-1", "slug": inserted["slug"], "title": inserted["title"]},
			})
		default:
			t.Errorf("unexpected backend call: %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/articles/submit", validSubmission()), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "art-1", data["id"])
	assert.Equal(t, "Exactly Ten!", data["title"])
	slug := data["slug"].(string)
	assert.True(t, strings.HasPrefix(slug, "exactly-ten-"), "slug %q", slug)
	assert.Equal(t, "/article/"+slug, data["url"])

	// The row written to the datastore
	assert.Equal(t, "pending", inserted["status"])
	assert.Equal(t, true, inserted["published"])
	assert.Equal(t, "cat-1", inserted["category_id"])
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", inserted["author_id"])
	assert.Equal(t, "exactly ten", inserted["normalized_title"])
}

func TestSubmitArticleContentTooShort(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("validation failures must not reach the datastore: %s %s", r.Method, r.URL)
	}))

	payload := validSubmission()
	payload["content"] = strings.Repeat("a", 199)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/articles/submit", payload), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "CONTENT_TOO_SHORT", body["code"])
	assert.Equal(t, "content", body["field"])
}

func TestSubmitArticleDuplicateTitle(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/rest/v1/articles" {
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "existing"}})
			return
		}
		t.Errorf("unexpected backend call: %s %s", r.Method, r.URL)
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/articles/submit", validSubmission()), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "DUPLICATE_TITLE", body["code"])
	assert.Equal(t, "An article with a similar title already exists", body["message"])
}

func TestListArticlesPagination(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "eq.true", q.Get("published"))
		assert.Equal(t, "eq.approved", q.Get("status"))
		assert.Equal(t, "published_at.desc", q.Get("order"))
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		assert.Equal(t, "0-9", r.Header.Get("Range"))

		w.Header().Set("Content-Range", "0-1/42")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "a1", "title": "First", "slug": "first", "views": 3},
			{"id": "a2", "title": "Second", "slug": "second", "views": 1},
		})
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	directive := "public, max-age=30, s-maxage=60, stale-while-revalidate=300"
	assert.Equal(t, directive, resp.Header.Get("Cache-Control"))
	assert.Equal(t, directive, resp.Header.Get("CDN-Cache-Control"))
	assert.Equal(t, directive, resp.Header.Get("Vercel-CDN-Cache-Control"))

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
	assert.Equal(t, float64(42), pagination["total"])
	assert.Equal(t, float64(5), pagination["total_pages"])
	assert.Len(t, data["articles"], 2)
}

func TestListArticlesLimitCapped(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0-49", r.Header.Get("Range"))
		w.Header().Set("Content-Range", "*/0")
		writeJSON(w, http.StatusOK, []any{})
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/articles?limit=500", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetArticleRendersContent(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/articles":
			assert.Equal(t, "eq.first", r.URL.Query().Get("slug"))
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "ba0d5a8b-5e6f-4f8a-9d01-2b4c6b7f0e11", "title": "First", "slug": "first",
					"content": "# Hello\n\nPlain **bold** text.", "views": 7},
			})
		default:
			// The background view recorder may or may not land before the
			// test finishes; accept whatever it sends.
			w.WriteHeader(http.StatusNoContent)
		}
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/articles/first", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	directive := "public, max-age=60, s-maxage=120, stale-while-revalidate=600"
	assert.Equal(t, directive, resp.Header.Get("Cache-Control"))

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "# Hello\n\nPlain **bold** text.", data["content"])
	html := data["content_html"].(string)
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestGetArticleNotFound(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/articles/no-such-slug", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "Article not found", body["message"])
}

func TestGetArticleHidesUndecidedAndRejected(t *testing.T) {
	// A submitter gets the slug back from the 201, but the row sits at
	// status=pending (or rejected/spam after moderation) with published=true.
	// The detail query must carry the approved filter so the backend never
	// matches such a row.
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "eq.approved", q.Get("status"))
		assert.Equal(t, "eq.true", q.Get("published"))
		// The stored row is rejected, so the filtered select matches nothing
		writeJSON(w, http.StatusOK, []any{})
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/articles/rejected-scoop", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestRecordViewBadIDStillSucceeds(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("malformed ids must not reach the datastore: %s %s", r.Method, r.URL)
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/articles/not-a-uuid/view", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["success"])
}

func TestModerateRequiresBearerToken(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/admin/moderate", map[string]any{
		"article_id": "a1",
		"action":     "approve",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeBody(t, resp)["code"])
}

func TestModerateApprove(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/rest/v1/articles", r.URL.Path)
		assert.Equal(t, "eq.a1", r.URL.Query().Get("id"))

		var patch map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "approved", patch["status"])

		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "a1", "title": "First", "slug": "first", "status": "approved"},
		})
	})

	app := newTestApp(t, backend)
	req := jsonRequest(http.MethodPost, "/api/v1/admin/moderate", map[string]any{
		"article_id": "a1",
		"action":     "approve",
	})
	req.Header.Set("Authorization", "Bearer admin-secret")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "approved", data["status"])
	assert.Equal(t, "approve", data["action"])
	assert.Equal(t, "/article/first", data["url"])
}

func TestModerateValidationMessages(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	cases := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{"missing action", map[string]any{"article_id": "a1"}, "article_id and action are required"},
		{"unknown action", map[string]any{"article_id": "a1", "action": "promote"}, "action must be: approve, reject, or spam"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(http.MethodPost, "/api/v1/admin/moderate", tc.payload)
			req.Header.Set("Authorization", "Bearer admin-secret")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestRegisterJournalist(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/rest/v1/journalists", r.URL.Path)
			writeJSON(w, http.StatusOK, []any{})
		case http.MethodPost:
			var row map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
			assert.Equal(t, "pending_claim", row["status"])
			writeJSON(w, http.StatusCreated, []map[string]any{
				{"id": "j1", "name": row["name"], "status": "pending_claim", "created_at": "2026-08-29T00:00:00Z"},
			})
		}
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/journalists/register", map[string]any{
		"name":        "Crabby Reporter",
		"description": "All claw, no filler",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pending_claim", body["status"])

	journalist := body["journalist"].(map[string]any)
	assert.True(t, strings.HasPrefix(journalist["api_key"].(string), "oct_sk_"))
	assert.True(t, strings.HasPrefix(journalist["claim_url"].(string),
		"https://the-claw-news.vercel.app/claim/oct_claim_"))
	assert.NotEmpty(t, journalist["verification_code"])

	setup := body["setup"].(map[string]any)
	assert.Contains(t, setup, "step_1")
	assert.Contains(t, body["tweet_template"], "Crabby Reporter")
}

func TestRegisterJournalistRejectsBadNames(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("validation failures must not reach the datastore: %s %s", r.Method, r.URL)
	}))

	cases := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{"too short", map[string]any{"name": "x"}, "Name must be 2-50 characters"},
		{"missing", map[string]any{}, "Name must be 2-50 characters"},
		{"bad characters", map[string]any{"name": "crab!crab"}, "Name must be alphanumeric (with spaces/dashes)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/journalists/register", tc.payload), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["error"])
		})
	}
}

func TestVerifyJournalist(t *testing.T) {
	var patched map[string]string
	var authorInsert map[string]any

	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/journalists":
			assert.Equal(t, "eq.oct_claim_abc", r.URL.Query().Get("claim_code"))
			desc := "All claw, no filler"
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "j1", "name": "Crabby Reporter", "description": desc, "status": "pending_claim"},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/rest/v1/journalists":
			assert.Equal(t, "eq.j1", r.URL.Query().Get("id"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "j1", "status": "claimed"}})
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/authors":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&authorInsert))
			writeJSON(w, http.StatusCreated, []map[string]any{{"id": "auth-1", "name": "Crabby Reporter"}})
		default:
			t.Errorf("unexpected backend call: %s %s", r.Method, r.URL)
		}
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/journalists/verify", map[string]any{
		"claim_code": "oct_claim_abc",
		"tweet_url":  "https://x.com/crabhuman/status/12345",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	journalist := body["journalist"].(map[string]any)
	assert.Equal(t, "claimed", journalist["status"])
	assert.Equal(t, "@crabhuman", journalist["claimed_by"])

	// The claim is recorded with the bound handle, and a byline row is
	// provisioned for the journalist.
	assert.Equal(t, "claimed", patched["status"])
	assert.Equal(t, "crabhuman", patched["claimed_by_twitter"])
	assert.NotEmpty(t, patched["claimed_at"])
	assert.Equal(t, "Crabby Reporter", authorInsert["name"])
	assert.Equal(t, "j1", authorInsert["journalist_id"])
}

func TestVerifyJournalistSecondClaimRejected(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method, "a claimed journalist must not be written to")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "j1", "name": "Crabby Reporter", "status": "claimed"},
		})
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/journalists/verify", map[string]any{
		"claim_code": "oct_claim_abc",
		"tweet_url":  "https://x.com/someoneelse/status/999",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "This journalist is already claimed", body["error"])
}

func TestVerifyJournalistRejectsBadInput(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("claim_code") {
		case "eq.oct_claim_abc":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "j1", "name": "Crabby Reporter", "status": "pending_claim"},
			})
		default:
			writeJSON(w, http.StatusOK, []any{})
		}
	})

	app := newTestApp(t, backend)

	cases := []struct {
		name    string
		payload map[string]any
		status  int
		message string
	}{
		{"missing fields", map[string]any{"claim_code": "oct_claim_abc"}, http.StatusBadRequest,
			"claim_code and tweet_url are required"},
		{"unknown code", map[string]any{"claim_code": "oct_claim_nope", "tweet_url": "https://x.com/a/status/1"},
			http.StatusNotFound, "Invalid claim code"},
		{"not a post url", map[string]any{"claim_code": "oct_claim_abc", "tweet_url": "https://example.com/crab"},
			http.StatusBadRequest, "Invalid tweet URL format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/journalists/verify", tc.payload), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["error"])
		})
	}
}

func TestJournalistStatusRequiresAuth(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/journalists/status", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing Authorization header", body["error"])
}

func TestSubmitRateLimited(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "existing"}})
	})

	app := newTestApp(t, backend)

	// The submit window allows 10 requests; responses before the limit carry
	// the remaining budget.
	for i := 0; i < 10; i++ {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/articles/submit", validSubmission()), -1)
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/articles/submit", validSubmission()), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	body := decodeBody(t, resp)
	assert.Equal(t, "RATE_LIMITED", body["code"])
	assert.NotNil(t, body["retry_after"])
}

func TestHealthDegraded(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "error", body["database"])
}

func TestPingReportsEnv(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["pong"])
	envCheck := body["env_check"].(map[string]any)
	assert.Equal(t, true, envCheck["has_supabase_url"])
	assert.Equal(t, true, envCheck["has_service_key"])
}

func TestSitemap(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/categories":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "c1", "name": "Breaking News", "slug": "breaking-news"},
			})
		case "/rest/v1/articles":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"slug": "first", "updated_at": "2026-08-01T00:00:00Z"},
			})
		}
	})

	app := newTestApp(t, backend)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	xml := string(raw)
	assert.Contains(t, xml, "<loc>https://the-claw-news.vercel.app/category/breaking-news</loc>")
	assert.Contains(t, xml, "<loc>https://the-claw-news.vercel.app/article/first</loc>")
	assert.Contains(t, xml, "<loc>https://the-claw-news.vercel.app/become-a-journalist</loc>")
}
