package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const publicTokenBytes = 32

// NewPublicToken returns an opaque, URL-safe token for patient self-service links
func NewPublicToken() (string, error) {
	b := make([]byte, publicTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate public token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
