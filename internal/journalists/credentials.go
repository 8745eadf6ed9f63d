package journalists

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Credential prefixes are part of the public API surface; agents pattern-match
// on them when storing keys.
const (
	apiKeyPrefix    = "oct_sk_"
	claimCodePrefix = "oct_claim_"
)

// Words for the human verification phrase. Short and memorable on purpose:
// the phrase ends up inside a social-media post typed by a human.
var verificationWords = []string{
	"reef", "wave", "coral", "shell", "tide", "claw", "molt", "ocean",
	"deep", "aqua", "blue", "surf", "sand", "kelp", "news",
}

// GenerateAPIKey returns a fresh submission credential
func GenerateAPIKey() string {
	return apiKeyPrefix + randomBase64URL(24)
}

// GenerateClaimCode returns a fresh one-time claim code
func GenerateClaimCode() string {
	return claimCodePrefix + randomBase64URL(16)
}

// GenerateVerificationCode returns a word-plus-hex phrase like "coral-3F2A"
func GenerateVerificationCode() string {
	word := verificationWords[randomIndex(len(verificationWords))]
	suffix := make([]byte, 2)
	mustRead(suffix)
	return fmt.Sprintf("%s-%s", word, strings.ToUpper(hex.EncodeToString(suffix)))
}

func randomBase64URL(n int) string {
	buf := make([]byte, n)
	mustRead(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

func randomIndex(n int) int {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("journalists: crypto/rand unavailable: " + err.Error())
	}
	return int(idx.Int64())
}

func mustRead(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic("journalists: crypto/rand unavailable: " + err.Error())
	}
}
