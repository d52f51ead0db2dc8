package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/averahq/avera/internal/models"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(contextUserKey).(*models.User)
	return user
}

func clientIP(c *fiber.Ctx) string {
	if forwarded := strings.TrimSpace(c.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return strings.TrimSpace(c.IP())
}
