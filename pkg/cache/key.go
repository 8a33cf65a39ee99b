package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives the cache key for a request.
// Format: UPPERCASE_METHOD:URL[:credential_hash]
//
// The URL is taken verbatim: query parameter order and trailing slashes are
// significant, so textually different URLs produce distinct entries even
// when semantically equivalent.
func Key(method, url, credentialHash string) string {
	key := strings.ToUpper(method) + ":" + url
	if credentialHash != "" {
		key += ":" + credentialHash
	}
	return key
}

// HashCredential returns a deterministic one-way fingerprint of a bearer
// credential: the first 16 hex characters of its SHA-256 digest. The
// fingerprint isolates cache entries between callers without ever being
// reversible to the credential.
func HashCredential(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:8])
}
