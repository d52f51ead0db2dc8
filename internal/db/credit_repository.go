package db

import (
	"errors"
	"strings"
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSpendKeyRequired = errors.New("spend idempotency key required")
	ErrSpendDuplicate   = errors.New("spend already recorded for key")
)

type CreditRepository struct {
	database *gorm.DB
}

func NewCreditRepository(database *gorm.DB) *CreditRepository {
	return &CreditRepository{database: database}
}

func (repo *CreditRepository) FindByUserID(userID uint) (models.MessageCredit, error) {
	var credit models.MessageCredit
	if err := repo.database.Where("user_id = ?", userID).First(&credit).Error; err != nil {
		return models.MessageCredit{}, err
	}
	return credit, nil
}

// Seed creates the per-account credit row with the initial free grant.
// Re-seeding an existing account is a no-op.
func (repo *CreditRepository) Seed(userID uint, grant int, now time.Time) error {
	var existing int64
	if err := repo.database.Model(&models.MessageCredit{}).
		Where("user_id = ?", userID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return repo.database.Create(&models.MessageCredit{
		UserID:                userID,
		FreeMessagesRemaining: grant,
		TotalMessagesSent:     0,
		UpdatedAt:             now,
	}).Error
}

func (repo *CreditRepository) Grant(userID uint, amount int, now time.Time) error {
	return repo.database.Model(&models.MessageCredit{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"free_messages_remaining": gorm.Expr("free_messages_remaining + ?", amount),
			"updated_at":              now,
		}).Error
}

// Consume spends credits for one send in a single atomic update. The
// decrement runs server-side so concurrent tabs cannot lose updates,
// and the unique spend key makes a retried request spend nothing. The
// balance is allowed to go negative: gifts costing more than the
// remaining balance still complete.
func (repo *CreditRepository) Consume(userID uint, cost int, idempotencyKey string, now time.Time) error {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return ErrSpendKeyRequired
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		var duplicates int64
		if err := tx.Model(&models.CreditSpend{}).
			Where("idempotency_key = ?", key).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return ErrSpendDuplicate
		}

		if err := tx.Create(&models.CreditSpend{
			UserID:         userID,
			IdempotencyKey: key,
			Cost:           cost,
			CreatedAt:      now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.MessageCredit{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"free_messages_remaining": gorm.Expr("free_messages_remaining - ?", cost),
				"total_messages_sent":     gorm.Expr("total_messages_sent + 1"),
				"updated_at":              now,
			}).Error
	})
}
