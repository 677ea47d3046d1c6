package team

import (
	"crypto/rand"
	"fmt"
)

const codeLength = 8

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a random 8-character join code. Uniqueness is not
// guaranteed here; the caller retries when the storage layer reports a
// collision.
func GenerateCode() (string, error) {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating code bytes: %w", err)
	}

	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}

	return string(b), nil
}
