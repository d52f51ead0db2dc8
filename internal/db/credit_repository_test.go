package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/averahq/avera/internal/models"
)

func openTestRepositories(t *testing.T) *Repositories {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "avera.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewRepositories(database)
}

func seedCreditUser(t *testing.T, repos *Repositories, email string, grant int) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", Country: models.DefaultCountry, CreatedAt: time.Now().UTC()}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := repos.Credits.Seed(user.ID, grant, time.Now().UTC()); err != nil {
		t.Fatalf("seed credits: %v", err)
	}
	return user
}

func TestCreditRepository_SeedIsIdempotent(t *testing.T) {
	repos := openTestRepositories(t)
	user := seedCreditUser(t, repos, "a@b.com", models.FreeMessageGrant)

	if err := repos.Credits.Seed(user.ID, 100, time.Now().UTC()); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	credit, err := repos.Credits.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("load credits: %v", err)
	}
	if credit.FreeMessagesRemaining != models.FreeMessageGrant {
		t.Fatalf("re-seed must not change the balance, got %d", credit.FreeMessagesRemaining)
	}
}

func TestCreditRepository_ConsumeDecrementsAndCounts(t *testing.T) {
	repos := openTestRepositories(t)
	user := seedCreditUser(t, repos, "a@b.com", 3)

	if err := repos.Credits.Consume(user.ID, 1, "send-1", time.Now().UTC()); err != nil {
		t.Fatalf("consume: %v", err)
	}

	credit, err := repos.Credits.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("load credits: %v", err)
	}
	if credit.FreeMessagesRemaining != 2 {
		t.Fatalf("expected remaining 2, got %d", credit.FreeMessagesRemaining)
	}
	if credit.TotalMessagesSent != 1 {
		t.Fatalf("expected one message counted, got %d", credit.TotalMessagesSent)
	}
}

func TestCreditRepository_ConsumeMayOverdraw(t *testing.T) {
	repos := openTestRepositories(t)
	user := seedCreditUser(t, repos, "a@b.com", 1)

	if err := repos.Credits.Consume(user.ID, 12, "gift-1", time.Now().UTC()); err != nil {
		t.Fatalf("consume: %v", err)
	}

	credit, err := repos.Credits.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("load credits: %v", err)
	}
	if credit.FreeMessagesRemaining != -11 {
		t.Fatalf("expected overdraft to -11, got %d", credit.FreeMessagesRemaining)
	}
}

func TestCreditRepository_ConsumeDuplicateKeySpendsNothing(t *testing.T) {
	repos := openTestRepositories(t)
	user := seedCreditUser(t, repos, "a@b.com", 3)

	if err := repos.Credits.Consume(user.ID, 1, "send-1", time.Now().UTC()); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if err := repos.Credits.Consume(user.ID, 1, "send-1", time.Now().UTC()); !errors.Is(err, ErrSpendDuplicate) {
		t.Fatalf("expected ErrSpendDuplicate, got %v", err)
	}

	credit, err := repos.Credits.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("load credits: %v", err)
	}
	if credit.FreeMessagesRemaining != 2 {
		t.Fatalf("duplicate key must not spend again, remaining %d", credit.FreeMessagesRemaining)
	}
}

func TestCreditRepository_ConsumeRequiresKey(t *testing.T) {
	repos := openTestRepositories(t)
	user := seedCreditUser(t, repos, "a@b.com", 3)

	if err := repos.Credits.Consume(user.ID, 1, "  ", time.Now().UTC()); !errors.Is(err, ErrSpendKeyRequired) {
		t.Fatalf("expected ErrSpendKeyRequired, got %v", err)
	}
}

func TestReferralRepository_ApplyIdempotentPerPair(t *testing.T) {
	repos := openTestRepositories(t)
	referrer := seedCreditUser(t, repos, "referrer@example.com", 3)
	referred := seedCreditUser(t, repos, "referred@example.com", 3)

	code := models.ReferralCode{UserID: referrer.ID, Code: "AVRA-TEST-CODE", CreatedAt: time.Now().UTC()}
	if err := repos.Referrals.CreateCode(&code); err != nil {
		t.Fatalf("create code: %v", err)
	}

	now := time.Now().UTC()
	if err := repos.Referrals.Apply(referrer.ID, referred.ID, code.Code, models.ReferralBonusCredits, now); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := repos.Referrals.Apply(referrer.ID, referred.ID, code.Code, models.ReferralBonusCredits, now); !errors.Is(err, ErrReferralAlreadyApplied) {
		t.Fatalf("expected ErrReferralAlreadyApplied, got %v", err)
	}

	credit, err := repos.Credits.FindByUserID(referrer.ID)
	if err != nil {
		t.Fatalf("load referrer credits: %v", err)
	}
	if credit.FreeMessagesRemaining != 3+models.ReferralBonusCredits {
		t.Fatalf("expected a single bonus grant, balance %d", credit.FreeMessagesRemaining)
	}

	updated, err := repos.Referrals.FindCodeByValue(code.Code)
	if err != nil {
		t.Fatalf("reload code: %v", err)
	}
	if updated.Uses != 1 {
		t.Fatalf("expected one use, got %d", updated.Uses)
	}
}
