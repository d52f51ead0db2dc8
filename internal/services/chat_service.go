package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/averahq/avera/internal/models"
)

var (
	ErrPartnerMissing   = errors.New("no partner persona for user")
	ErrMessageRequired  = errors.New("message text required")
	ErrCreditsExhausted = errors.New("message credits exhausted")
	ErrModelUnavailable = errors.New("chat model not configured")
)

type ChatPartnerStore interface {
	FindByUserID(userID uint) (models.AIPartner, error)
}

type ConversationStore interface {
	FindOrCreate(userID uint, partnerID uint, now time.Time) (models.Conversation, error)
	ListMessages(conversationID uint) ([]models.Message, error)
	AppendMessage(message *models.Message) error
	CountMessages(conversationID uint) (int64, error)
}

type GiftStore interface {
	ListTypes() ([]models.GiftType, error)
	FindTypeByID(giftTypeID uint) (models.GiftType, error)
	RecordSent(sent *models.GiftSent) error
}

// SendResult carries the persisted exchange back to the chat surface.
type SendResult struct {
	UserMessage      models.Message
	AssistantMessage models.Message
	Remaining        int
	Audio            string
}

// ChatService owns the conversation lifecycle: bootstrap with a
// welcome message, credit-gated text sends that go through the hosted
// model, and gift sends. The user message is persisted and the credit
// consumed before the model is called, mirroring the original send
// order — a model failure therefore still costs the credit.
type ChatService struct {
	partners      ChatPartnerStore
	conversations ConversationStore
	gifts         GiftStore
	gate          *CreditGate
	model         ModelClient
	voice         VoiceSynthesizer
	location      *time.Location
}

func NewChatService(
	partners ChatPartnerStore,
	conversations ConversationStore,
	gifts GiftStore,
	gate *CreditGate,
	model ModelClient,
	voice VoiceSynthesizer,
	location *time.Location,
) *ChatService {
	if location == nil {
		location = time.UTC
	}
	return &ChatService{
		partners:      partners,
		conversations: conversations,
		gifts:         gifts,
		gate:          gate,
		model:         model,
		voice:         voice,
		location:      location,
	}
}

// Bootstrap loads (or creates) the user's conversation and seeds the
// welcome message when it is empty.
func (service *ChatService) Bootstrap(userID uint) (models.Conversation, []models.Message, error) {
	partner, err := service.partners.FindByUserID(userID)
	if err != nil {
		return models.Conversation{}, nil, ErrPartnerMissing
	}

	now := time.Now().In(service.location)
	conversation, err := service.conversations.FindOrCreate(userID, partner.ID, now)
	if err != nil {
		return models.Conversation{}, nil, err
	}

	count, err := service.conversations.CountMessages(conversation.ID)
	if err != nil {
		return models.Conversation{}, nil, err
	}
	if count == 0 {
		welcome := models.Message{
			ConversationID: conversation.ID,
			Role:           models.MessageRoleAssistant,
			Content:        WelcomeMessage,
			EmotionalMode:  models.EmotionalModeRomantic,
			CreatedAt:      now,
		}
		if err := service.conversations.AppendMessage(&welcome); err != nil {
			return models.Conversation{}, nil, err
		}
	}

	messages, err := service.conversations.ListMessages(conversation.ID)
	if err != nil {
		return models.Conversation{}, nil, err
	}
	return conversation, messages, nil
}

func (service *ChatService) SendMessage(
	ctx context.Context,
	userID uint,
	text string,
	emotionalMode string,
	requestVoice bool,
	idempotencyKey string,
) (SendResult, error) {
	if text == "" {
		return SendResult{}, ErrMessageRequired
	}
	if service.model == nil {
		return SendResult{}, ErrModelUnavailable
	}

	partner, err := service.partners.FindByUserID(userID)
	if err != nil {
		return SendResult{}, ErrPartnerMissing
	}

	now := time.Now().In(service.location)
	decision, err := service.gate.Check(userID, now)
	if err != nil {
		return SendResult{}, err
	}
	if decision.Blocked {
		return SendResult{Remaining: decision.Remaining}, ErrCreditsExhausted
	}

	conversation, err := service.conversations.FindOrCreate(userID, partner.ID, now)
	if err != nil {
		return SendResult{}, err
	}

	history, err := service.conversations.ListMessages(conversation.ID)
	if err != nil {
		return SendResult{}, err
	}

	mode := NormalizeEmotionalMode(emotionalMode)
	userMessage := models.Message{
		ConversationID: conversation.ID,
		Role:           models.MessageRoleUser,
		Content:        text,
		CreatedAt:      now,
	}
	if err := service.conversations.AppendMessage(&userMessage); err != nil {
		return SendResult{}, err
	}

	if err := service.gate.Consume(userID, 1, idempotencyKey, now); err != nil {
		return SendResult{}, err
	}

	reply, err := service.model.Reply(
		ctx,
		BuildPersonaPrompt(partner.Name, partner.Personality, mode),
		messageHistoryTurns(history),
		text,
	)
	if err != nil {
		return SendResult{}, err
	}

	assistantMessage := models.Message{
		ConversationID: conversation.ID,
		Role:           models.MessageRoleAssistant,
		Content:        reply,
		EmotionalMode:  mode,
		CreatedAt:      time.Now().In(service.location),
	}
	if err := service.conversations.AppendMessage(&assistantMessage); err != nil {
		return SendResult{}, err
	}

	result := SendResult{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		Remaining:        decision.Remaining - 1,
	}

	if requestVoice && service.voice != nil {
		audio, err := service.voice.Synthesize(ctx, reply, partner.Gender, partner.Personality)
		if err != nil {
			log.Printf("chat: voice synthesis failed for user %d: %v", userID, err)
		} else {
			result.Audio = audio
		}
	}

	return result, nil
}

// SendGift records a gift in the conversation and consumes its catalog
// cost. The balance may go negative here: a gift costing more than the
// remaining credits still completes, and the next gate check blocks
// further sends.
func (service *ChatService) SendGift(userID uint, giftTypeID uint, idempotencyKey string) (models.GiftType, models.Message, error) {
	partner, err := service.partners.FindByUserID(userID)
	if err != nil {
		return models.GiftType{}, models.Message{}, ErrPartnerMissing
	}

	giftType, err := service.gifts.FindTypeByID(giftTypeID)
	if err != nil {
		return models.GiftType{}, models.Message{}, err
	}

	now := time.Now().In(service.location)
	decision, err := service.gate.Check(userID, now)
	if err != nil {
		return models.GiftType{}, models.Message{}, err
	}
	if decision.Blocked {
		return models.GiftType{}, models.Message{}, ErrCreditsExhausted
	}

	conversation, err := service.conversations.FindOrCreate(userID, partner.ID, now)
	if err != nil {
		return models.GiftType{}, models.Message{}, err
	}

	if err := service.gifts.RecordSent(&models.GiftSent{
		ConversationID: conversation.ID,
		GiftTypeID:     giftType.ID,
		SenderID:       userID,
		CreatedAt:      now,
	}); err != nil {
		return models.GiftType{}, models.Message{}, err
	}

	giftMessage := models.Message{
		ConversationID: conversation.ID,
		Role:           models.MessageRoleUser,
		Content:        giftType.Icon + " " + giftType.Name,
		CreatedAt:      now,
	}
	if err := service.conversations.AppendMessage(&giftMessage); err != nil {
		return models.GiftType{}, models.Message{}, err
	}

	if err := service.gate.Consume(userID, giftType.CostCredits, idempotencyKey, now); err != nil {
		return models.GiftType{}, models.Message{}, err
	}

	return giftType, giftMessage, nil
}

func (service *ChatService) GiftCatalog() ([]models.GiftType, error) {
	return service.gifts.ListTypes()
}

func messageHistoryTurns(messages []models.Message) []ChatTurn {
	turns := make([]ChatTurn, 0, len(messages))
	for _, message := range messages {
		turns = append(turns, ChatTurn{Role: message.Role, Content: message.Content})
	}
	return turns
}
