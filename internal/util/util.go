// Package util provides content hashing helpers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// ShortHash returns a truncated content hash suitable for cache-busting
// query strings.
func ShortHash(content []byte) string {
	return ContentHash(content)[:12]
}
