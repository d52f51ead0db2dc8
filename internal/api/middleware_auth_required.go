package api

import "github.com/gofiber/fiber/v2"

const contextUserKey = "currentUser"

// AuthRequired resolves the session cookie into a user and stores it
// in the request locals. The API is JSON-only, so failures answer 401
// rather than redirecting.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
