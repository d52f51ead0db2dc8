package models

import "time"

const SubscriptionStatusActive = "active"

type UserSubscription struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index;not null"`
	Status    string     `gorm:"not null"`
	ExpiresAt *time.Time `gorm:""`
	CreatedAt time.Time  `gorm:"not null"`
}

// ActiveAt reports whether the subscription unlocks messaging at the
// given instant: status must be active and the expiry must not have
// passed. A missing expiry never counts as active.
func (subscription UserSubscription) ActiveAt(now time.Time) bool {
	if subscription.Status != SubscriptionStatusActive {
		return false
	}
	if subscription.ExpiresAt == nil {
		return false
	}
	return !subscription.ExpiresAt.Before(now)
}
