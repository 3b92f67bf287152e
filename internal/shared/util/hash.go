package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a principal such as "guest:abc" to a hex digest usable as
// a path segment or object key prefix.
func HashUserKey(principal string) string {
	sum := sha256.Sum256([]byte(principal))
	return hex.EncodeToString(sum[:])
}
