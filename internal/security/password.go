package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is deliberately above the library default; password
// hashing is the main brute-force friction in this system.
const DefaultBcryptCost = 12

// HashPassword derives a salted digest of password at the given cost.
// Each call embeds a fresh random salt, so identical inputs produce
// different digests.
func HashPassword(password string, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches digest. Malformed
// digests verify as false; this never panics or surfaces an error.
func VerifyPassword(password string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}
