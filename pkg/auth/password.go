package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 10

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword validates a password against a bcrypt hash.
func CheckPassword(password, stored string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// ValidatePassword enforces the profile password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("Password must be at least 10 characters long.")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~", r):
			special = true
		}
	}
	switch {
	case !upper:
		return errors.New("Password must contain an uppercase letter.")
	case !lower:
		return errors.New("Password must contain a lowercase letter.")
	case !digit:
		return errors.New("Password must contain a digit.")
	case !special:
		return errors.New("Password must contain a special character.")
	}
	return nil
}
