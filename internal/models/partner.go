package models

import "time"

const (
	GenderFemale    = "female"
	GenderMale      = "male"
	GenderNonBinary = "non_binary"
)

const (
	PersonalityRomanticSoft     = "romantic_soft"
	PersonalityFlirtyPlayful    = "flirty_playful"
	PersonalitySupportiveCaring = "supportive_caring"
	PersonalityBoldPassionate   = "bold_passionate"
	PersonalityChaosFun         = "chaos_fun"
)

const (
	PreferenceLove             = "love"
	PreferenceFlirting         = "flirting"
	PreferenceEmotionalSupport = "emotional_support"
	PreferenceFriendship       = "friendship"
)

// AIPartner is the persisted companion persona created at the end of
// onboarding. Preference is stored for prompt tuning even though the
// chat prompt currently only reads name and personality.
type AIPartner struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	Gender      string    `gorm:"not null"`
	Personality string    `gorm:"not null"`
	Preference  string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
}

func KnownGenders() []string {
	return []string{GenderFemale, GenderMale, GenderNonBinary}
}

func KnownPersonalities() []string {
	return []string{
		PersonalityRomanticSoft,
		PersonalityFlirtyPlayful,
		PersonalitySupportiveCaring,
		PersonalityBoldPassionate,
		PersonalityChaosFun,
	}
}

func KnownPreferences() []string {
	return []string{
		PreferenceLove,
		PreferenceFlirting,
		PreferenceEmotionalSupport,
		PreferenceFriendship,
	}
}
