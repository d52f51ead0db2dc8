package db

import (
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	database *gorm.DB
}

func NewSubscriptionRepository(database *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{database: database}
}

func (repo *SubscriptionRepository) HasActive(userID uint, now time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.UserSubscription{}).
		Where("user_id = ? AND status = ? AND expires_at >= ?", userID, models.SubscriptionStatusActive, now).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *SubscriptionRepository) FindLatest(userID uint) (models.UserSubscription, error) {
	var subscription models.UserSubscription
	if err := repo.database.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&subscription).Error; err != nil {
		return models.UserSubscription{}, err
	}
	return subscription, nil
}

func (repo *SubscriptionRepository) Create(subscription *models.UserSubscription) error {
	return repo.database.Create(subscription).Error
}
