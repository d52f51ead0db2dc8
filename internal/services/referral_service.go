package services

import (
	"errors"
	"time"

	"github.com/averahq/avera/internal/models"
	"github.com/averahq/avera/internal/security"
	"gorm.io/gorm"
)

var (
	ErrReferralCodeUnknown = errors.New("referral code unknown")
	ErrSelfReferral        = errors.New("cannot refer yourself")
)

type ReferralStore interface {
	CreateCode(code *models.ReferralCode) error
	FindCodeByUserID(userID uint) (models.ReferralCode, error)
	FindCodeByValue(value string) (models.ReferralCode, error)
	Apply(referrerID uint, referredID uint, code string, bonusCredits int, now time.Time) error
}

type ReferralService struct {
	referrals ReferralStore
}

func NewReferralService(referrals ReferralStore) *ReferralService {
	return &ReferralService{referrals: referrals}
}

// IssueCode creates the user's shareable referral code. Collisions on
// the unique code column are retried with a fresh code.
func (service *ReferralService) IssueCode(userID uint, now time.Time) (models.ReferralCode, error) {
	const attempts = 5

	var lastErr error
	for index := 0; index < attempts; index++ {
		value, err := security.RandomCode("AVRA", 2, 4)
		if err != nil {
			return models.ReferralCode{}, err
		}

		code := models.ReferralCode{
			UserID:    userID,
			Code:      value,
			CreatedAt: now,
		}
		if err := service.referrals.CreateCode(&code); err != nil {
			lastErr = err
			continue
		}
		return code, nil
	}
	return models.ReferralCode{}, lastErr
}

func (service *ReferralService) CodeForUser(userID uint) (models.ReferralCode, error) {
	return service.referrals.FindCodeByUserID(userID)
}

// Apply credits the owner of the given code for the referred signup.
// Unknown codes and self-referrals are rejected; a pair that was
// already credited surfaces the store's duplicate error and grants
// nothing more.
func (service *ReferralService) Apply(codeValue string, referredID uint, now time.Time) error {
	code, err := service.referrals.FindCodeByValue(codeValue)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReferralCodeUnknown
	}
	if err != nil {
		return err
	}
	if code.UserID == referredID {
		return ErrSelfReferral
	}

	return service.referrals.Apply(code.UserID, referredID, code.Code, models.ReferralBonusCredits, now)
}
