package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const tokenSize = 32

// GenerateToken returns a random high-entropy secret as hex. Only its hash
// is ever stored; the plaintext goes out once in an email link.
func GenerateToken() (string, error) {
	b := make([]byte, tokenSize)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// HashToken maps a token to its storage form. A fast hash is fine here: the
// input is 256 bits of randomness and single-use, not a user password.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
