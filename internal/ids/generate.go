// Package ids generates short item IDs and resolves abbreviated ones.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"strconv"
	"time"

	internalstrings "github.com/amonks/mindcache/internal/strings"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	if length <= 0 {
		return ""
	}
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLower(encoded[:length])
}

// GenerateWithTimestamp hashes input together with a timestamp, so the same
// text entered twice still gets two IDs.
func GenerateWithTimestamp(input string, timestamp time.Time, length int) string {
	return Generate(input+timestamp.Format(time.RFC3339Nano), length)
}

// GenerateUnique returns an ID for input that is not already in taken. On a
// collision the ID is rehashed with a counter suffix.
func GenerateUnique(input string, timestamp time.Time, taken map[string]bool) string {
	id := GenerateWithTimestamp(input, timestamp, DefaultLength)
	for n := 1; taken[id]; n++ {
		id = GenerateWithTimestamp(input+"#"+strconv.Itoa(n), timestamp, DefaultLength)
	}
	return id
}
