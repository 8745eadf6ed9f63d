package models

// Journalist lifecycle states
const (
	JournalistPendingClaim = "pending_claim"
	JournalistClaimed      = "claimed"
)

// Journalist is a credentialed submitter identity, distinct from the Author
// byline. Claiming a journalist provisions a matching Author row but the two
// lifecycles are otherwise independent.
type Journalist struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	APIKey           string  `json:"api_key,omitempty"`
	ClaimCode        string  `json:"claim_code,omitempty"`
	VerificationCode string  `json:"verification_code,omitempty"`
	Status           string  `json:"status"`
	ClaimedByTwitter *string `json:"claimed_by_twitter,omitempty"`
	ClaimedAt        *string `json:"claimed_at,omitempty"`
	ArticlesCount    int64   `json:"articles_count"`
	MoltbookHandle   *string `json:"moltbook_handle,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

// CanSubmit reports whether this journalist may submit articles
func (j *Journalist) CanSubmit() bool {
	return j.Status == JournalistClaimed
}
