package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// MaxSlugLength bounds document UIDs accepted from callers.
const MaxSlugLength = 200

// ValidSlug reports whether s looks like a document UID.
func ValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && slugRegex.MatchString(s)
}
