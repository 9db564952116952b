package token

import (
	"crypto/rand"
	"encoding/base64"
)

// PasswordBytes is the entropy, in bytes, of a minted admission password.
// 12 bytes render to a 16-char URL-safe string (96 bits).
const PasswordBytes = 12

// NewURLSafe returns n random bytes encoded with the URL-safe base64
// alphabet, without padding.
func NewURLSafe(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
