package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Byte sizes of the random secrets issued by the auth flows.
const (
	VerificationTokenBytes = 40
	RefreshTokenBytes      = 40
	ResetTokenBytes        = 70
)

// RandomToken returns n cryptographically random bytes hex-encoded.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the SHA-256 hex digest of a token. Reset secrets are
// stored at rest only in this form; the plaintext goes out in the email.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
