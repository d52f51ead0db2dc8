package api

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/averahq/avera/internal/services"
)

const (
	onboardingCookiePurpose = "onboarding-flow"
	onboardingCookieTTL     = 24 * time.Hour
)

// loadOnboardingFlow restores the wizard state from the sealed cookie.
// A missing or tampered cookie restarts the wizard at the welcome
// screen instead of failing the request.
func (handler *Handler) loadOnboardingFlow(c *fiber.Ctx) services.OnboardingFlow {
	rawValue := c.Cookies(onboardingCookieName)
	if rawValue == "" {
		return services.NewOnboardingFlow()
	}

	plaintext, err := handler.cookieCodec.open(onboardingCookiePurpose, rawValue)
	if err != nil {
		return services.NewOnboardingFlow()
	}

	flow := services.OnboardingFlow{}
	if err := json.Unmarshal(plaintext, &flow); err != nil || !services.ValidOnboardingStep(flow.Step) {
		return services.NewOnboardingFlow()
	}
	return flow
}

func (handler *Handler) storeOnboardingFlow(c *fiber.Ctx, flow services.OnboardingFlow) error {
	plaintext, err := json.Marshal(flow)
	if err != nil {
		return err
	}

	sealed, err := handler.cookieCodec.seal(onboardingCookiePurpose, plaintext)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     onboardingCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(onboardingCookieTTL),
	})
	return nil
}

func (handler *Handler) clearOnboardingFlow(c *fiber.Ctx) {
	handler.expireCookie(c, onboardingCookieName)
}
