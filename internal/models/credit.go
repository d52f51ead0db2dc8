package models

import "time"

// FreeMessageGrant is seeded for every new account at signup.
const FreeMessageGrant = 3

// ReferralBonusCredits is granted to the referrer once per referred signup.
const ReferralBonusCredits = 2

type MessageCredit struct {
	ID                    uint      `gorm:"primaryKey"`
	UserID                uint      `gorm:"uniqueIndex;not null"`
	FreeMessagesRemaining int       `gorm:"not null;default:0"`
	TotalMessagesSent     int       `gorm:"not null;default:0"`
	UpdatedAt             time.Time `gorm:"not null"`
}

// CreditSpend records one accepted credit-consuming send. The unique
// idempotency key makes retried sends spend at most once.
type CreditSpend struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"index;not null"`
	IdempotencyKey string    `gorm:"uniqueIndex;not null"`
	Cost           int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}
