package models

import "time"

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

const (
	EmotionalModeRomantic      = "romantic"
	EmotionalModeFlirty        = "flirty"
	EmotionalModeSoft          = "soft"
	EmotionalModeDeepEmotional = "deep_emotional"
	EmotionalModePlayful       = "playful"
)

type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	PartnerID uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"index;not null"`
	Role           string    `gorm:"not null"`
	Content        string    `gorm:"not null"`
	EmotionalMode  string    `gorm:"not null;default:''"`
	CreatedAt      time.Time `gorm:"not null"`
}

func KnownEmotionalModes() []string {
	return []string{
		EmotionalModeRomantic,
		EmotionalModeFlirty,
		EmotionalModeSoft,
		EmotionalModeDeepEmotional,
		EmotionalModePlayful,
	}
}
