// utils/token.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// User tokens: fixed "GR" tag + 30 hex chars from 15 random bytes, 32 chars
// total. Issued once at signup and never rotated.
const tokenPrefix = "GR"

func NewUserToken() (string, error) {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenPrefix + hex.EncodeToString(buf), nil
}
