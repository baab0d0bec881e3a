package passhash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a bcrypt digest from a plaintext password. bcrypt salts every
// call, so hashing the same plaintext twice yields different digests.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest or a mismatch both yield false; Verify never returns an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
