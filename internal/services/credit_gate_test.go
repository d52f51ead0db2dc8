package services

import (
	"errors"
	"testing"
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type fakeCreditStore struct {
	credits  map[uint]models.MessageCredit
	spent    []string
	spendErr error
}

func newFakeCreditStore() *fakeCreditStore {
	return &fakeCreditStore{credits: make(map[uint]models.MessageCredit)}
}

func (store *fakeCreditStore) FindByUserID(userID uint) (models.MessageCredit, error) {
	credit, known := store.credits[userID]
	if !known {
		return models.MessageCredit{}, gorm.ErrRecordNotFound
	}
	return credit, nil
}

func (store *fakeCreditStore) Consume(userID uint, cost int, idempotencyKey string, now time.Time) error {
	if store.spendErr != nil {
		return store.spendErr
	}
	for _, key := range store.spent {
		if key == idempotencyKey {
			return errors.New("duplicate spend")
		}
	}
	store.spent = append(store.spent, idempotencyKey)

	credit := store.credits[userID]
	credit.FreeMessagesRemaining -= cost
	credit.TotalMessagesSent++
	store.credits[userID] = credit
	return nil
}

type fakeSubscriptionChecker struct {
	active bool
	err    error
}

func (checker *fakeSubscriptionChecker) HasActive(userID uint, now time.Time) (bool, error) {
	return checker.active, checker.err
}

func TestCreditGate_Check_ExhaustionCallbackFiresOncePerCheck(t *testing.T) {
	store := newFakeCreditStore()
	store.credits[7] = models.MessageCredit{UserID: 7, FreeMessagesRemaining: 0}

	fired := 0
	gate := NewCreditGate(store, &fakeSubscriptionChecker{}, func(userID uint) { fired++ })

	decision, err := gate.Check(7, time.Now())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !decision.Blocked {
		t.Fatal("expected blocked decision at zero credits")
	}
	if fired != 1 {
		t.Fatalf("expected callback exactly once, fired %d times", fired)
	}

	if _, err := gate.Check(7, time.Now()); err != nil {
		t.Fatalf("second check: %v", err)
	}
	if fired != 2 {
		t.Fatalf("expected one firing per check, got %d after two checks", fired)
	}
}

func TestCreditGate_Check_NeverFiresWithCreditsLeft(t *testing.T) {
	store := newFakeCreditStore()
	store.credits[7] = models.MessageCredit{UserID: 7, FreeMessagesRemaining: 5}

	fired := 0
	for _, subscribed := range []bool{false, true} {
		gate := NewCreditGate(store, &fakeSubscriptionChecker{active: subscribed}, func(userID uint) { fired++ })
		decision, err := gate.Check(7, time.Now())
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if decision.Blocked {
			t.Fatal("expected unblocked decision with credits remaining")
		}
		if decision.Remaining != 5 {
			t.Fatalf("expected remaining 5, got %d", decision.Remaining)
		}
	}
	if fired != 0 {
		t.Fatalf("callback fired %d times with credits remaining", fired)
	}
}

func TestCreditGate_Check_SubscriptionUnblocksExhaustedBalance(t *testing.T) {
	store := newFakeCreditStore()
	store.credits[7] = models.MessageCredit{UserID: 7, FreeMessagesRemaining: -2}

	fired := 0
	gate := NewCreditGate(store, &fakeSubscriptionChecker{active: true}, func(userID uint) { fired++ })

	decision, err := gate.Check(7, time.Now())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if decision.Blocked {
		t.Fatal("expected subscription to unblock messaging")
	}
	if !decision.Subscribed {
		t.Fatal("expected subscribed decision")
	}
	if fired != 0 {
		t.Fatalf("callback fired %d times despite subscription", fired)
	}
}

func TestCreditGate_Check_MissingRowDoesNotBlock(t *testing.T) {
	fired := 0
	gate := NewCreditGate(newFakeCreditStore(), &fakeSubscriptionChecker{}, func(userID uint) { fired++ })

	decision, err := gate.Check(99, time.Now())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if decision.Known {
		t.Fatal("expected unknown balance for missing row")
	}
	if decision.Blocked {
		t.Fatal("missing row must not block")
	}
	if fired != 0 {
		t.Fatalf("callback fired %d times for missing row", fired)
	}
}

func TestCreditGate_Consume_DefaultsCostToOne(t *testing.T) {
	store := newFakeCreditStore()
	store.credits[7] = models.MessageCredit{UserID: 7, FreeMessagesRemaining: 3}
	gate := NewCreditGate(store, &fakeSubscriptionChecker{}, nil)

	if err := gate.Consume(7, 0, "send-1", time.Now()); err != nil {
		t.Fatalf("consume: %v", err)
	}

	credit := store.credits[7]
	if credit.FreeMessagesRemaining != 2 {
		t.Fatalf("expected remaining 2, got %d", credit.FreeMessagesRemaining)
	}
	if credit.TotalMessagesSent != 1 {
		t.Fatalf("expected one message counted, got %d", credit.TotalMessagesSent)
	}
}

func TestCreditGate_Consume_GiftMayOverdraw(t *testing.T) {
	store := newFakeCreditStore()
	store.credits[7] = models.MessageCredit{UserID: 7, FreeMessagesRemaining: 1}
	gate := NewCreditGate(store, &fakeSubscriptionChecker{}, nil)

	if err := gate.Consume(7, 5, "gift-1", time.Now()); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if remaining := store.credits[7].FreeMessagesRemaining; remaining != -4 {
		t.Fatalf("expected overdraft to -4, got %d", remaining)
	}
}
