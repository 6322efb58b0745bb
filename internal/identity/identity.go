// Package identity derives the deterministic values the assessment needs
// from a user-supplied identifier.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrEmptyIdentifier is returned by Normalize for empty or whitespace-only input.
var ErrEmptyIdentifier = errors.New("user identifier must not be empty")

// Seed returns the sum of the Unicode code points of identifier.
//
// The value must stay stable across releases: it drives the per-user
// question ordering, and a changed seed would reorder a paused assessment.
// Anagrams collide ("ab" and "ba" both give 195).
func Seed(identifier string) int64 {
	var sum int64
	for _, r := range identifier {
		sum += int64(r)
	}
	return sum
}

// Normalize trims surrounding whitespace and rejects empty identifiers.
func Normalize(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return "", ErrEmptyIdentifier
	}
	return id, nil
}

// Key returns the storage key for identifier: the hex SHA-256 digest.
// Hosts persist progress under this key so the raw identifier is never stored.
func Key(identifier string) string {
	h := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(h[:])
}
