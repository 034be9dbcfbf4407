package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for token-sequence caching. Tokenization is
// pure, so entries are only ever written and read, never invalidated; TTL
// expiry alone bounds growth.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// TokenKey generates a cache key for a text under a given encoding.
// Raw text goes through a hash so arbitrary content is filesystem-safe.
func TokenKey(encoding, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "factprep:v1:" + encoding + ":" + hex.EncodeToString(hash[:])
}
