package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const resetTokenBytes = 32

// GenerateResetToken returns a URL-safe random token for password recovery.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
