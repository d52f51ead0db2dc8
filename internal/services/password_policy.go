package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength enforces the signup password rule: at least
// 8 characters with at least one letter and one digit.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrWeakPassword
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasLetter && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
