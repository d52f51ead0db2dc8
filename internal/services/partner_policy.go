package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/averahq/avera/internal/models"
)

const PartnerNameMaxLength = 20

var (
	ErrPartnerNameRequired = errors.New("partner name required")
	ErrPartnerNameTooLong  = errors.New("partner name too long")
	ErrUnknownGender       = errors.New("unknown gender")
	ErrUnknownPersonality  = errors.New("unknown personality")
	ErrUnknownPreference   = errors.New("unknown preference")
)

// ValidatePartnerName trims the raw name and enforces the 1..20
// character bound. The trimmed name is returned so callers store the
// canonical form.
func ValidatePartnerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrPartnerNameRequired
	}
	if utf8.RuneCountInString(name) > PartnerNameMaxLength {
		return "", ErrPartnerNameTooLong
	}
	return name, nil
}

func ParseGender(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	for _, known := range models.KnownGenders() {
		if value == known {
			return value, nil
		}
	}
	return "", ErrUnknownGender
}

func ParsePersonality(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	for _, known := range models.KnownPersonalities() {
		if value == known {
			return value, nil
		}
	}
	return "", ErrUnknownPersonality
}

func ParsePreference(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	for _, known := range models.KnownPreferences() {
		if value == known {
			return value, nil
		}
	}
	return "", ErrUnknownPreference
}
