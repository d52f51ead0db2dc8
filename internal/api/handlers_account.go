package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCredits reports the balance the way the chat surface consumes it:
// remaining count plus the gate's blocked flag.
func (handler *Handler) GetCredits(c *fiber.Ctx) error {
	user := currentUser(c)

	decision, err := handler.gate.Check(user.ID, time.Now().In(handler.location))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load credits")
	}

	return c.JSON(fiber.Map{
		"remaining":  decision.Remaining,
		"known":      decision.Known,
		"subscribed": decision.Subscribed,
		"blocked":    decision.Blocked,
	})
}

func (handler *Handler) GetReferrals(c *fiber.Ctx) error {
	user := currentUser(c)

	code, err := handler.referrals.CodeForUser(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "no referral code")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load referral code")
	}

	return c.JSON(fiber.Map{
		"code": code.Code,
		"uses": code.Uses,
	})
}

func (handler *Handler) GetSubscription(c *fiber.Ctx) error {
	user := currentUser(c)

	now := time.Now().In(handler.location)
	subscription, err := handler.repos.Subscriptions.FindLatest(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"active": false})
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load subscription")
	}

	view := fiber.Map{
		"active": subscription.ActiveAt(now),
		"status": subscription.Status,
	}
	if subscription.ExpiresAt != nil {
		view["expires_at"] = subscription.ExpiresAt.Format(time.RFC3339)
	}
	return c.JSON(view)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
