package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns 16 random bytes hex encoded. Used for request ids and
// session tokens.
func NewID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
