package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/averahq/avera/internal/models"
	"github.com/averahq/avera/internal/services"
)

// GetConversation bootstraps (or reloads) the user's conversation and
// returns its full history.
func (handler *Handler) GetConversation(c *fiber.Ctx) error {
	user := currentUser(c)

	conversation, messages, err := handler.chat.Bootstrap(user.ID)
	if errors.Is(err, services.ErrPartnerMissing) {
		return apiError(c, fiber.StatusNotFound, "no partner persona")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load conversation")
	}

	return c.JSON(fiber.Map{
		"conversation_id": conversation.ID,
		"messages":        messageViews(messages),
	})
}

func (handler *Handler) SendMessage(c *fiber.Ctx) error {
	user := currentUser(c)

	input := sendMessageInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.IdempotencyKey == "" {
		input.IdempotencyKey = uuid.NewString()
	}

	result, err := handler.chat.SendMessage(
		c.UserContext(),
		user.ID,
		input.Message,
		input.EmotionalMode,
		input.WithVoice,
		input.IdempotencyKey,
	)
	switch {
	case errors.Is(err, services.ErrMessageRequired):
		return apiError(c, fiber.StatusBadRequest, "message text required")
	case errors.Is(err, services.ErrPartnerMissing):
		return apiError(c, fiber.StatusNotFound, "no partner persona")
	case errors.Is(err, services.ErrModelUnavailable):
		return apiError(c, fiber.StatusServiceUnavailable, "chat is not configured")
	case errors.Is(err, services.ErrCreditsExhausted):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":     "message credits exhausted",
			"remaining": result.Remaining,
		})
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to send message")
	}

	response := fiber.Map{
		"user_message":      messageView(result.UserMessage),
		"assistant_message": messageView(result.AssistantMessage),
		"remaining":         result.Remaining,
	}
	if result.Audio != "" {
		response["audio_base64"] = result.Audio
	}
	return c.JSON(response)
}

func (handler *Handler) GetGiftCatalog(c *fiber.Ctx) error {
	giftTypes, err := handler.chat.GiftCatalog()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load gifts")
	}

	views := make([]fiber.Map, 0, len(giftTypes))
	for _, giftType := range giftTypes {
		views = append(views, fiber.Map{
			"id":           giftType.ID,
			"name":         giftType.Name,
			"icon":         giftType.Icon,
			"cost_credits": giftType.CostCredits,
		})
	}
	return c.JSON(fiber.Map{"gifts": views})
}

func (handler *Handler) SendGift(c *fiber.Ctx) error {
	user := currentUser(c)

	input := sendGiftInput{}
	if err := c.BodyParser(&input); err != nil || input.GiftTypeID == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.IdempotencyKey == "" {
		input.IdempotencyKey = uuid.NewString()
	}

	giftType, message, err := handler.chat.SendGift(user.ID, input.GiftTypeID, input.IdempotencyKey)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "unknown gift")
	case errors.Is(err, services.ErrPartnerMissing):
		return apiError(c, fiber.StatusNotFound, "no partner persona")
	case errors.Is(err, services.ErrCreditsExhausted):
		return apiError(c, fiber.StatusPaymentRequired, "message credits exhausted")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to send gift")
	}

	return c.JSON(fiber.Map{
		"gift": fiber.Map{
			"id":           giftType.ID,
			"name":         giftType.Name,
			"icon":         giftType.Icon,
			"cost_credits": giftType.CostCredits,
		},
		"message": messageView(message),
	})
}

// Transcribe converts a recorded voice message to text so the client
// can feed it into the regular send path.
func (handler *Handler) Transcribe(c *fiber.Ctx) error {
	if handler.transcriber == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "voice transcription is not configured")
	}

	input := transcribeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	text, err := handler.transcriber.Transcribe(c.UserContext(), input.AudioBase64)
	if errors.Is(err, services.ErrVoiceAudioInvalid) {
		return apiError(c, fiber.StatusBadRequest, "invalid audio payload")
	}
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "transcription failed")
	}
	return c.JSON(fiber.Map{"text": text})
}

func messageView(message models.Message) fiber.Map {
	view := fiber.Map{
		"id":         message.ID,
		"role":       message.Role,
		"content":    message.Content,
		"created_at": message.CreatedAt.Format(time.RFC3339),
	}
	if message.EmotionalMode != "" {
		view["emotional_mode"] = message.EmotionalMode
	}
	return view
}

func messageViews(messages []models.Message) []fiber.Map {
	views := make([]fiber.Map, 0, len(messages))
	for _, message := range messages {
		views = append(views, messageView(message))
	}
	return views
}
