package db

import (
	"errors"
	"time"

	"github.com/averahq/avera/internal/models"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	database *gorm.DB
}

func NewConversationRepository(database *gorm.DB) *ConversationRepository {
	return &ConversationRepository{database: database}
}

func (repo *ConversationRepository) FindOrCreate(userID uint, partnerID uint, now time.Time) (models.Conversation, error) {
	var conversation models.Conversation
	err := repo.database.
		Where("user_id = ? AND partner_id = ?", userID, partnerID).
		First(&conversation).Error
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Conversation{}, err
	}

	conversation = models.Conversation{
		UserID:    userID,
		PartnerID: partnerID,
		CreatedAt: now,
	}
	if err := repo.database.Create(&conversation).Error; err != nil {
		return models.Conversation{}, err
	}
	return conversation, nil
}

func (repo *ConversationRepository) ListMessages(conversationID uint) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	if err := repo.database.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *ConversationRepository) AppendMessage(message *models.Message) error {
	return repo.database.Create(message).Error
}

func (repo *ConversationRepository) CountMessages(conversationID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
