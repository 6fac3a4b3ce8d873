package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint derives a stable cache key from one logical translation request.
// The triple is serialized as a canonical JSON array before hashing so that
// field order is fixed and the digest is reproducible; target-language order is
// part of the identity because output ordering matters downstream.
func Fingerprint(author, text string, languages []string) string {
	if languages == nil {
		languages = []string{}
	}
	canonical, err := json.Marshal([]any{author, text, languages})
	if err != nil {
		// Strings and string slices always marshal; keep a degenerate key
		// rather than failing the request.
		canonical = []byte(author + "\x00" + text)
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:])
}
