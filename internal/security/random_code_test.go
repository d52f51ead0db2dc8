package security

import (
	"strings"
	"testing"
)

func TestRandomString_Length(t *testing.T) {
	value, err := RandomString(16, CodeAlphabet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(value) != 16 {
		t.Fatalf("expected 16 characters, got %d", len(value))
	}
	for _, char := range value {
		if !strings.ContainsRune(CodeAlphabet, char) {
			t.Fatalf("character %q outside alphabet", char)
		}
	}
}

func TestRandomString_RejectsBadInput(t *testing.T) {
	if _, err := RandomString(-1, CodeAlphabet); err == nil {
		t.Fatal("expected error for negative length")
	}
	if _, err := RandomString(8, ""); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestRandomCode_Format(t *testing.T) {
	code, err := RandomCode("AVRA", 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		t.Fatalf("expected prefix plus two groups, got %q", code)
	}
	if parts[0] != "AVRA" {
		t.Fatalf("expected AVRA prefix, got %q", parts[0])
	}
	for _, group := range parts[1:] {
		if len(group) != 4 {
			t.Fatalf("expected 4-character group, got %q", group)
		}
	}
}

func TestRandomCode_RejectsBadShape(t *testing.T) {
	if _, err := RandomCode("AVRA", 0, 4); err == nil {
		t.Fatal("expected error for zero groups")
	}
}
