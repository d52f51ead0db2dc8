package services

import (
	"errors"
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type CreditStore interface {
	FindByUserID(userID uint) (models.MessageCredit, error)
	Consume(userID uint, cost int, idempotencyKey string, now time.Time) error
}

type SubscriptionChecker interface {
	HasActive(userID uint, now time.Time) (bool, error)
}

// CreditDecision is the outcome of one gate check. Blocked means the
// caller must refuse the send and present the paywall.
type CreditDecision struct {
	Remaining  int
	Known      bool
	Subscribed bool
	Blocked    bool
}

// CreditGate decides whether a user may keep messaging. The check is
// advisory: the decrement itself is a single atomic update in the
// store, so a racing second tab can at worst overdraw by one send, not
// lose an update.
type CreditGate struct {
	credits       CreditStore
	subscriptions SubscriptionChecker
	onExhausted   func(userID uint)
}

func NewCreditGate(credits CreditStore, subscriptions SubscriptionChecker, onExhausted func(userID uint)) *CreditGate {
	return &CreditGate{
		credits:       credits,
		subscriptions: subscriptions,
		onExhausted:   onExhausted,
	}
}

// Check reads the balance and, when it is exhausted and no active
// subscription covers the user, fires the exhaustion callback exactly
// once. A missing credit row means the balance cannot be determined;
// the user is not blocked in that case.
func (gate *CreditGate) Check(userID uint, now time.Time) (CreditDecision, error) {
	credit, err := gate.credits.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CreditDecision{Known: false}, nil
	}
	if err != nil {
		return CreditDecision{}, err
	}

	decision := CreditDecision{
		Remaining: credit.FreeMessagesRemaining,
		Known:     true,
	}
	if credit.FreeMessagesRemaining > 0 {
		return decision, nil
	}

	subscribed, err := gate.subscriptions.HasActive(userID, now)
	if err != nil {
		return CreditDecision{}, err
	}
	decision.Subscribed = subscribed
	if subscribed {
		return decision, nil
	}

	decision.Blocked = true
	if gate.onExhausted != nil {
		gate.onExhausted(userID)
	}
	return decision, nil
}

// Consume spends credits for a completed send. Cost defaults to one
// for plain messages; gifts pass their catalog cost and may drive the
// balance negative.
func (gate *CreditGate) Consume(userID uint, cost int, idempotencyKey string, now time.Time) error {
	if cost <= 0 {
		cost = 1
	}
	return gate.credits.Consume(userID, cost, idempotencyKey, now)
}
