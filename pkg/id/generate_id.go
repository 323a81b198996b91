package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters from 16 random bytes.
// Used for JWT jti values and anywhere a compact opaque token id is
// needed; loan records themselves carry canonical UUIDs.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
