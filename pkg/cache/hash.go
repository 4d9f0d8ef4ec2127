package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey generates a cache key by hashing the components.
// The key format is prefix:sha256(json(parts)), so any JSON-encodable
// values may take part and their order matters.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string. Chart documents are keyed by
// their Hash so the same bytes hit the same cached artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
