package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a stable hex identifier for s, safe to put in logs instead of s itself.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
