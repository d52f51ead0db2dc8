package db

import (
	"errors"
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

var ErrReferralAlreadyApplied = errors.New("referral already applied for pair")

type ReferralRepository struct {
	database *gorm.DB
}

func NewReferralRepository(database *gorm.DB) *ReferralRepository {
	return &ReferralRepository{database: database}
}

func (repo *ReferralRepository) CreateCode(code *models.ReferralCode) error {
	return repo.database.Create(code).Error
}

func (repo *ReferralRepository) FindCodeByUserID(userID uint) (models.ReferralCode, error) {
	var code models.ReferralCode
	if err := repo.database.Where("user_id = ?", userID).First(&code).Error; err != nil {
		return models.ReferralCode{}, err
	}
	return code, nil
}

func (repo *ReferralRepository) FindCodeByValue(value string) (models.ReferralCode, error) {
	var code models.ReferralCode
	if err := repo.database.Where("code = ?", value).First(&code).Error; err != nil {
		return models.ReferralCode{}, err
	}
	return code, nil
}

// Apply records a referred signup in one transaction: the referral
// pair row, the code's usage counter, and the referrer's bonus
// credits. The unique pair index turns a second application into
// ErrReferralAlreadyApplied with nothing granted.
func (repo *ReferralRepository) Apply(referrerID uint, referredID uint, code string, bonusCredits int, now time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Model(&models.Referral{}).
			Where("referrer_id = ? AND referred_id = ?", referrerID, referredID).
			Count(&matched).Error; err != nil {
			return err
		}
		if matched > 0 {
			return ErrReferralAlreadyApplied
		}

		if err := tx.Create(&models.Referral{
			ReferrerID: referrerID,
			ReferredID: referredID,
			Code:       code,
			CreatedAt:  now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.ReferralCode{}).
			Where("code = ?", code).
			Update("uses", gorm.Expr("uses + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&models.MessageCredit{}).
			Where("user_id = ?", referrerID).
			Updates(map[string]any{
				"free_messages_remaining": gorm.Expr("free_messages_remaining + ?", bonusCredits),
				"updated_at":              now,
			}).Error
	})
}
