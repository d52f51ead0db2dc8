package models

import "time"

type ReferralCode struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"uniqueIndex;not null"`
	Uses      int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

// Referral links a referred signup to the referrer. The composite
// unique index makes applying the same pair twice a no-op, so bonus
// credits are granted at most once per referred account.
type Referral struct {
	ID         uint      `gorm:"primaryKey"`
	ReferrerID uint      `gorm:"not null;uniqueIndex:idx_referral_pair"`
	ReferredID uint      `gorm:"not null;uniqueIndex:idx_referral_pair"`
	Code       string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}
