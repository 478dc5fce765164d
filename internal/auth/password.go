package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Malformed hashes verify as false; this never panics.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of the password with a fresh random
// salt, so two hashes of the same password differ.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
