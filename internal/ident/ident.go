// Package ident provides random identifier generation for synthesized
// markup elements. The generator is an injectable capability so tests can
// substitute deterministic sequences without touching pipeline logic.
package ident

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// TokenLength is the length of a generated token in hex characters.
const TokenLength = 32

// Generator produces unique opaque tokens used as markup identifiers.
// Implementations must be safe for concurrent use; uniqueness is
// probabilistic (random draw), never checked or deduplicated.
type Generator interface {
	NextToken() string
}

// RandomGenerator draws each token independently from a 128-bit random
// space. The zero value is ready to use.
type RandomGenerator struct{}

// NextToken returns a fresh 32-character lowercase hex token.
func (RandomGenerator) NextToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
