package db

import (
	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type PartnerRepository struct {
	database *gorm.DB
}

func NewPartnerRepository(database *gorm.DB) *PartnerRepository {
	return &PartnerRepository{database: database}
}

func (repo *PartnerRepository) Create(partner *models.AIPartner) error {
	return repo.database.Create(partner).Error
}

func (repo *PartnerRepository) FindByUserID(userID uint) (models.AIPartner, error) {
	var partner models.AIPartner
	if err := repo.database.Where("user_id = ?", userID).First(&partner).Error; err != nil {
		return models.AIPartner{}, err
	}
	return partner, nil
}
