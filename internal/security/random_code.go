package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// CodeAlphabet avoids ambiguous characters (0/O, 1/I/l) so codes
// survive being read aloud or retyped from a screenshot.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of
// the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// RandomCode builds a dash-separated code like XXXX-XXXX from the code
// alphabet, with the given prefix prepended when non-empty.
func RandomCode(prefix string, groups int, groupLength int) (string, error) {
	if groups <= 0 || groupLength <= 0 {
		return "", errNegativeLength
	}

	parts := make([]string, 0, groups+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for index := 0; index < groups; index++ {
		group, err := RandomString(groupLength, CodeAlphabet)
		if err != nil {
			return "", err
		}
		parts = append(parts, group)
	}
	return strings.Join(parts, "-"), nil
}
