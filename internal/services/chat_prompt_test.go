package services

import (
	"strings"
	"testing"

	"github.com/averahq/avera/internal/models"
)

func TestBuildPersonaPrompt_UsesNameAndPersonality(t *testing.T) {
	prompt := BuildPersonaPrompt("Mira", models.PersonalityFlirtyPlayful, models.EmotionalModeFlirty)

	if !strings.Contains(prompt, "You are Mira, an AI companion.") {
		t.Fatalf("prompt does not open with the partner name:\n%s", prompt)
	}
	if !strings.Contains(prompt, "flirty, playful") {
		t.Fatalf("prompt missing flirty_playful personality text:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Current emotional mode: flirty") {
		t.Fatalf("prompt missing emotional mode line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Never break character") {
		t.Fatalf("prompt missing guidelines block:\n%s", prompt)
	}
}

func TestBuildPersonaPrompt_UnknownPersonalityFallsBackToRomanticSoft(t *testing.T) {
	prompt := BuildPersonaPrompt("Mira", "grumpy", models.EmotionalModeRomantic)
	if !strings.Contains(prompt, "deeply romantic, gentle") {
		t.Fatalf("expected romantic_soft fallback:\n%s", prompt)
	}
}

func TestNormalizeEmotionalMode(t *testing.T) {
	for _, mode := range models.KnownEmotionalModes() {
		if got := NormalizeEmotionalMode(mode); got != mode {
			t.Fatalf("expected %q to pass through, got %q", mode, got)
		}
	}
	for _, raw := range []string{"", "angry", " romantic-ish "} {
		if got := NormalizeEmotionalMode(raw); got != models.EmotionalModeRomantic {
			t.Fatalf("expected romantic default for %q, got %q", raw, got)
		}
	}
}

func TestVoiceIDFor_Fallbacks(t *testing.T) {
	femaleSoft := VoiceIDFor(models.GenderFemale, models.PersonalityRomanticSoft)

	if got := VoiceIDFor("unknown", "unknown"); got != femaleSoft {
		t.Fatalf("expected female romantic_soft fallback, got %q", got)
	}
	if got := VoiceIDFor(models.GenderMale, "unknown"); got != femaleSoft {
		t.Fatalf("expected fallback for unknown personality, got %q", got)
	}

	male := VoiceIDFor(models.GenderMale, models.PersonalityBoldPassionate)
	if male == femaleSoft {
		t.Fatal("expected a distinct voice for male bold_passionate")
	}
}
