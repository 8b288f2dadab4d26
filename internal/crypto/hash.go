package crypto

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor, matching the deliberately slow
// cost-12 hashing used for stored credentials.
const PasswordCost = 12

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

const passwordSymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// ErrWeakPassword is the base error every password policy violation wraps,
// so callers can classify them with errors.Is while keeping the specific
// human-readable reason.
var ErrWeakPassword = errors.New("password does not meet requirements")

// HashPassword hashes a password with bcrypt at PasswordCost. The salt is
// generated by bcrypt and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword checks the password policy: minimum length 8 with at least
// one uppercase letter, one lowercase letter, one digit, and one symbol.
// Violations wrap ErrWeakPassword with the reason.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	case !hasSymbol:
		return fmt.Errorf("%w: must contain a symbol", ErrWeakPassword)
	}

	return nil
}
