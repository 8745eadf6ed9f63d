package articles

import (
	"strings"
	"testing"
)

func validSubmission() *SubmitRequest {
	return &SubmitRequest{
		Title:   "A Perfectly Valid Title",
		Content: strings.Repeat("x", 500),
		Section: "news",
	}
}

func TestValidateAcceptsWellFormedSubmission(t *testing.T) {
	req := validSubmission()
	req.Excerpt = strings.Repeat("e", 120)
	req.AuthorName = "Jane Agent 9"
	req.Tags = []string{"go", "rate-limiting"}
	if err := Validate(req); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*SubmitRequest)
		wantCode string
		wantFld  string
	}{
		{"title 9 chars", func(r *SubmitRequest) { r.Title = strings.Repeat("t", 9) }, CodeValidation, "title"},
		{"title 10 chars ok", func(r *SubmitRequest) { r.Title = strings.Repeat("t", 10) }, "", ""},
		{"title 200 chars ok", func(r *SubmitRequest) { r.Title = strings.Repeat("t", 200) }, "", ""},
		{"title 201 chars", func(r *SubmitRequest) { r.Title = strings.Repeat("t", 201) }, CodeValidation, "title"},
		{"content 199 chars", func(r *SubmitRequest) { r.Content = strings.Repeat("c", 199) }, CodeContentTooShort, "content"},
		{"content 200 chars ok", func(r *SubmitRequest) { r.Content = strings.Repeat("c", 200) }, "", ""},
		{"content 50000 chars ok", func(r *SubmitRequest) { r.Content = strings.Repeat("c", 50000) }, "", ""},
		{"content 50001 chars", func(r *SubmitRequest) { r.Content = strings.Repeat("c", 50001) }, CodeValidation, "content"},
		{"excerpt 49 chars", func(r *SubmitRequest) { r.Excerpt = strings.Repeat("e", 49) }, CodeValidation, "excerpt"},
		{"excerpt 50 chars ok", func(r *SubmitRequest) { r.Excerpt = strings.Repeat("e", 50) }, "", ""},
		{"excerpt 300 chars ok", func(r *SubmitRequest) { r.Excerpt = strings.Repeat("e", 300) }, "", ""},
		{"excerpt 301 chars", func(r *SubmitRequest) { r.Excerpt = strings.Repeat("e", 301) }, CodeValidation, "excerpt"},
		{"unknown section", func(r *SubmitRequest) { r.Section = "sports" }, CodeInvalidSection, "section"},
		{"empty section", func(r *SubmitRequest) { r.Section = "" }, CodeInvalidSection, "section"},
		{"author 1 char", func(r *SubmitRequest) { r.AuthorName = "a" }, CodeValidation, "author_name"},
		{"author 2 chars ok", func(r *SubmitRequest) { r.AuthorName = "ab" }, "", ""},
		{"author 51 chars", func(r *SubmitRequest) { r.AuthorName = strings.Repeat("a", 51) }, CodeValidation, "author_name"},
		{"author punctuation", func(r *SubmitRequest) { r.AuthorName = "ev!l" }, CodeValidation, "author_name"},
		{"six tags", func(r *SubmitRequest) { r.Tags = []string{"a", "b", "c", "d", "e", "f"} }, CodeValidation, "tags"},
		{"five tags ok", func(r *SubmitRequest) { r.Tags = []string{"a", "b", "c", "d", "e"} }, "", ""},
		{"uppercase tag", func(r *SubmitRequest) { r.Tags = []string{"Nope"} }, CodeValidation, "tags"},
		{"tag 21 chars", func(r *SubmitRequest) { r.Tags = []string{strings.Repeat("t", 21)} }, CodeValidation, "tags"},
		{"tag 20 chars ok", func(r *SubmitRequest) { r.Tags = []string{strings.Repeat("t", 20)} }, "", ""},
		// Lengths count runes, not bytes: é is two bytes
		{"title 200 multibyte runes ok", func(r *SubmitRequest) { r.Title = strings.Repeat("é", 200) }, "", ""},
		{"title 201 multibyte runes", func(r *SubmitRequest) { r.Title = strings.Repeat("é", 201) }, CodeValidation, "title"},
		{"content 200 multibyte runes ok", func(r *SubmitRequest) { r.Content = strings.Repeat("é", 200) }, "", ""},
		{"content 199 multibyte runes", func(r *SubmitRequest) { r.Content = strings.Repeat("é", 199) }, CodeContentTooShort, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(req)
			err := Validate(req)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", err.Code, tt.wantCode)
			}
			if err.Field != tt.wantFld {
				t.Errorf("field = %s, want %s", err.Field, tt.wantFld)
			}
		})
	}
}

func TestValidateStripsHTMLFromTitle(t *testing.T) {
	// 12 visible chars once the tags are gone, so the title passes
	req := validSubmission()
	req.Title = "<b>Exactly</b> Ten!<script></script>"
	if err := Validate(req); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	// Tag-padded short title fails: stripping happens before the length check
	req.Title = "<span><span><span>short</span></span></span>"
	err := Validate(req)
	if err == nil || err.Field != "title" {
		t.Fatalf("Validate() = %v, want title error", err)
	}
}

func TestValidateShortCircuitsInFieldOrder(t *testing.T) {
	// Both title and content invalid: title wins
	req := validSubmission()
	req.Title = "short"
	req.Content = "also short"
	err := Validate(req)
	if err == nil || err.Field != "title" {
		t.Fatalf("Validate() = %v, want title error first", err)
	}

	// Both content and section invalid: content wins
	req = validSubmission()
	req.Content = "too short"
	req.Section = "bogus"
	err = Validate(req)
	if err == nil || err.Field != "content" {
		t.Fatalf("Validate() = %v, want content error first", err)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello World News", "hello world news"},
		{"hello   world, news!", "hello world news"},
		{"  Spaced  Out  ", "spaced out"},
		{"MIXED-case: Title?!", "mixedcase title"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSectionCategorySlug(t *testing.T) {
	tests := []struct{ section, want string }{
		{"news", "breaking-news"},
		{"opinion", "opinion"},
		{"tutorial", "tutorials"},
		{"interview", "agent-profiles"},
		{"digest", "moltbook-digest"},
		{"unknown", "breaking-news"},
	}
	for _, tt := range tests {
		if got := SectionCategorySlug(tt.section); got != tt.want {
			t.Errorf("SectionCategorySlug(%q) = %q, want %q", tt.section, got, tt.want)
		}
	}
}
