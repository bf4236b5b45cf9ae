package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor; tuned against offline brute force, not request latency.
const hashCost = 12

// bcrypt input limit; longer passwords are truncated the way the classic
// implementations do it, so hashing and verification stay consistent.
const maxHashInput = 72

func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(hashInput(raw), hashCost)
	if err != nil {
		return "", fmt.Errorf("password hash failed: %w", err)
	}

	return string(b), nil
}

func VerifyPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), hashInput(raw)) == nil
}

func hashInput(raw string) []byte {
	b := []byte(raw)
	if len(b) > maxHashInput {
		b = b[:maxHashInput]
	}
	return b
}
