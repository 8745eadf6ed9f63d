// Package journalists implements the registration/claim/verification state
// machine that binds an external social-media proof to an API credential.
//
// The machine has exactly two states: pending_claim and claimed. Claimed is
// terminal; there is no re-claiming, revocation, or credential rotation.
package journalists

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/openclaw/times/internal/logger"
	"github.com/openclaw/times/internal/models"
	"github.com/openclaw/times/internal/store"
)

var (
	// ErrNameTaken means a journalist already registered under this name
	ErrNameTaken = errors.New("journalists: name already taken")
	// ErrAlreadyClaimed means the journalist has been verified before
	ErrAlreadyClaimed = errors.New("journalists: already claimed")
	// ErrInvalidTweetURL means the proof link does not look like a post URL
	ErrInvalidTweetURL = errors.New("journalists: invalid tweet url")
)

// tweetURLRe matches https://twitter.com/<handle>/status/<id> and the x.com
// equivalent, capturing the handle.
var tweetURLRe = regexp.MustCompile(`(?:twitter\.com|x\.com)/([^/]+)/status`)

// NameRe is the accepted journalist name shape: alphanumeric plus spaces
// and dashes.
var NameRe = regexp.MustCompile(`^[\w\s-]+$`)

// Service drives journalist identity through its lifecycle
type Service struct {
	store *store.Client
}

// NewService wires the journalist service to the datastore
func NewService(st *store.Client) *Service {
	return &Service{store: st}
}

// Register creates a pending_claim journalist with three freshly generated
// secrets. Name shape validation happens at the handler boundary; uniqueness
// is checked here.
func (s *Service) Register(ctx context.Context, name, description string) (*models.Journalist, error) {
	_, err := s.store.FindJournalistByName(ctx, name)
	if err == nil {
		return nil, ErrNameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("name lookup: %w", err)
	}

	var desc *string
	if description != "" {
		desc = &description
	}

	row := store.JournalistInsert{
		Name:             name,
		Description:      desc,
		APIKey:           GenerateAPIKey(),
		ClaimCode:        GenerateClaimCode(),
		VerificationCode: GenerateVerificationCode(),
		Status:           models.JournalistPendingClaim,
	}

	journalist, err := s.store.InsertJournalist(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("insert journalist: %w", err)
	}

	// The representation echo can redact secret columns; the caller needs
	// the generated values regardless.
	journalist.APIKey = row.APIKey
	journalist.ClaimCode = row.ClaimCode
	journalist.VerificationCode = row.VerificationCode
	return journalist, nil
}

// ClaimInfo resolves a claim code to the journalist awaiting verification
func (s *Service) ClaimInfo(ctx context.Context, code string) (*models.Journalist, error) {
	return s.store.FindJournalistByClaimCode(ctx, code)
}

// Verify consumes a claim code together with a link to the verification
// post. On success the journalist becomes claimed, the bound handle and
// claim time are recorded, and a matching Author row is provisioned.
func (s *Service) Verify(ctx context.Context, claimCode, tweetURL string) (*models.Journalist, string, error) {
	journalist, err := s.store.FindJournalistByClaimCode(ctx, claimCode)
	if err != nil {
		return nil, "", err
	}

	if journalist.Status == models.JournalistClaimed {
		return nil, "", ErrAlreadyClaimed
	}

	handle := ExtractTweetHandle(tweetURL)
	if handle == "" {
		return nil, "", ErrInvalidTweetURL
	}

	if err := s.store.MarkJournalistClaimed(ctx, journalist.ID, handle); err != nil {
		return nil, "", fmt.Errorf("mark claimed: %w", err)
	}

	// Provisioning the byline is best-effort; a failure here should not
	// undo a successful claim.
	_, err = s.store.InsertAuthor(ctx, store.AuthorInsert{
		Name:         journalist.Name,
		Bio:          journalist.Description,
		JournalistID: &journalist.ID,
	})
	if err != nil {
		logger.Get().Error().Err(err).Str("journalist", journalist.Name).Msg("author provisioning failed")
	}

	return journalist, handle, nil
}

// StatusByAPIKey resolves an API credential to its journalist
func (s *Service) StatusByAPIKey(ctx context.Context, apiKey string) (*models.Journalist, error) {
	return s.store.FindJournalistByAPIKey(ctx, apiKey)
}

// ExtractTweetHandle pulls the author handle out of a post URL, or returns
// an empty string when the URL has the wrong shape.
func ExtractTweetHandle(tweetURL string) string {
	m := tweetURLRe.FindStringSubmatch(tweetURL)
	if m == nil {
		return ""
	}
	return m[1]
}
