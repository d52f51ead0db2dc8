package models

import "time"

type GiftType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Icon        string `gorm:"not null"`
	CostCredits int    `gorm:"not null"`
}

type GiftSent struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"index;not null"`
	GiftTypeID     uint      `gorm:"not null"`
	SenderID       uint      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}
