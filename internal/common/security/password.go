package security

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidatePasswordComplexity checks the registration rules one at a time so
// the user sees the first unmet requirement, not a generic failure.
func ValidatePasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper.MatchString(password) {
		return fmt.Errorf("add at least 1 capital letter")
	}
	if !hasLower.MatchString(password) {
		return fmt.Errorf("add at least 1 small letter")
	}
	if !hasDigit.MatchString(password) {
		return fmt.Errorf("add at least 1 numeric character")
	}
	if !hasSpecial.MatchString(password) {
		return fmt.Errorf("add at least 1 special character")
	}
	return nil
}
