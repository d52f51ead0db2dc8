package services

import (
	"errors"
	"testing"
)

func TestValidatePasswordStrength_RejectsWeakPasswords(t *testing.T) {
	testCases := []string{
		"abc",      // too short, no digit
		"12345678", // no letter
		"abcdefgh", // no digit
		"a1",       // too short
	}

	for _, password := range testCases {
		if err := ValidatePasswordStrength(password); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword for %q, got %v", password, err)
		}
	}
}

func TestValidatePasswordStrength_AcceptsLetterPlusDigit(t *testing.T) {
	testCases := []string{
		"abcdefg1",
		"abcd1234",
		"PASSWORD1",
	}

	for _, password := range testCases {
		if err := ValidatePasswordStrength(password); err != nil {
			t.Fatalf("expected %q to pass, got %v", password, err)
		}
	}
}
