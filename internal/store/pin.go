package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashPin derives a bcrypt hash for the parent PIN.
func hashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// checkPin reports whether the PIN matches the stored hash. An empty hash
// means no PIN is set and always fails verification.
func checkPin(pin, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
