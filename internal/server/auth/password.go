package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/blogauth/internal/common"
)

// bcryptCost matches the work factor the rest of the stored hashes use.
const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of password. The salt is
// regenerated on every call, so identical passwords produce different hashes.
// Empty or whitespace-only passwords are rejected.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. It returns false,
// never an error, for empty input or a malformed hash.
func CheckPassword(password, hash string) bool {
	if strings.TrimSpace(password) == "" || strings.TrimSpace(hash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
