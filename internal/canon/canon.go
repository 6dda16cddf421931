// Package canon derives stable canonical identifiers from hypothesis
// statements. The id is a pure function of the statement text, so two
// sessions (or two processes) that phrase a hypothesis the same way can
// be correlated through audit logs and deduplicated without any shared
// state.
package canon

import (
	"strings"

	"github.com/google/uuid"
)

// namespace is the fixed UUIDv5 namespace for canonical ids. Changing it
// invalidates every previously issued id, so it is frozen.
var namespace = uuid.MustParse("7d1de3a2-9c4b-4a1e-8f60-2b5c6e4a9d01")

// ID returns the canonical identifier for a statement.
//
// Normalization policy: leading and trailing whitespace is trimmed,
// internal whitespace runs collapse to a single space, and the result is
// lowercased. The id is the UUIDv5 of the normalized text under a fixed
// namespace. Deterministic for any input, including the empty string.
func ID(statement string) string {
	return uuid.NewSHA1(namespace, []byte(Normalize(statement))).String()
}

// Normalize applies the canonicalization policy without hashing.
// Exposed so callers can compare statements pre-hash.
func Normalize(statement string) string {
	return strings.ToLower(strings.Join(strings.Fields(statement), " "))
}
