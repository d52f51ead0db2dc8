package db

import (
	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type GiftRepository struct {
	database *gorm.DB
}

func NewGiftRepository(database *gorm.DB) *GiftRepository {
	return &GiftRepository{database: database}
}

func (repo *GiftRepository) ListTypes() ([]models.GiftType, error) {
	giftTypes := make([]models.GiftType, 0)
	if err := repo.database.Order("cost_credits ASC").Find(&giftTypes).Error; err != nil {
		return nil, err
	}
	return giftTypes, nil
}

func (repo *GiftRepository) FindTypeByID(giftTypeID uint) (models.GiftType, error) {
	var giftType models.GiftType
	if err := repo.database.First(&giftType, giftTypeID).Error; err != nil {
		return models.GiftType{}, err
	}
	return giftType, nil
}

func (repo *GiftRepository) RecordSent(sent *models.GiftSent) error {
	return repo.database.Create(sent).Error
}
