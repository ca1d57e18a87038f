package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyForURL returns the cache key for a page URL. Surrounding whitespace and a
// trailing slash do not change the key.
func KeyForURL(url string) string {
	normalized := strings.TrimRight(strings.TrimSpace(url), "/")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
