package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/averahq/avera/internal/services"
)

// GetOnboarding returns the current wizard state. A `ref` query
// parameter on any load captures the referral code into the flow so it
// survives until signup.
func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	flow := handler.loadOnboardingFlow(c)

	if ref := strings.TrimSpace(c.Query("ref")); ref != "" {
		flow.ReferralCode = ref
	}
	if err := handler.storeOnboardingFlow(c, flow); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save progress")
	}

	return c.JSON(onboardingView(flow))
}

// AdvanceOnboarding applies the payload to whichever step the flow is
// on. Validation failures leave the stored state untouched, so the
// client stays on the same step.
func (handler *Handler) AdvanceOnboarding(c *fiber.Ctx) error {
	input := onboardingAdvanceInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	flow := handler.loadOnboardingFlow(c)

	var err error
	switch flow.Step {
	case services.StepWelcome:
		err = flow.Confirm()
	case services.StepSelection:
		err = flow.ChooseAppearance(input.Gender, input.Personality)
	case services.StepNaming:
		err = flow.NamePartner(input.Name)
	case services.StepPreferences:
		err = flow.ChoosePreference(input.Preference)
	case services.StepSummary:
		err = flow.ContinueToSignup()
	default:
		err = services.ErrOnboardingStepOrder
	}
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, onboardingErrorMessage(err))
	}

	if err := handler.storeOnboardingFlow(c, flow); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save progress")
	}
	return c.JSON(onboardingView(flow))
}

// EditOnboarding is the single non-linear edge: summary back to
// selection, keeping everything entered so far.
func (handler *Handler) EditOnboarding(c *fiber.Ctx) error {
	flow := handler.loadOnboardingFlow(c)

	if err := flow.EditFromSummary(); err != nil {
		return apiError(c, fiber.StatusBadRequest, onboardingErrorMessage(err))
	}
	if err := handler.storeOnboardingFlow(c, flow); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save progress")
	}
	return c.JSON(onboardingView(flow))
}

// CompleteOnboarding runs the signup terminal action, signs the new
// user in, and discards the wizard state.
func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	input := onboardingCompleteInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	flow := handler.loadOnboardingFlow(c)
	if flow.Step != services.StepSignup {
		return apiError(c, fiber.StatusBadRequest, onboardingErrorMessage(services.ErrOnboardingStepOrder))
	}

	user, err := handler.signup.Complete(
		c.UserContext(),
		flow.Profile,
		input.Email,
		input.Password,
		flow.ReferralCode,
		clientIP(c),
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, "email already exists")
		case errors.Is(err, services.ErrAuthCredentialsInvalid),
			errors.Is(err, services.ErrWeakPassword),
			errors.Is(err, services.ErrPartnerProfileIncomplete):
			return apiError(c, fiber.StatusBadRequest, onboardingErrorMessage(err))
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create account")
		}
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.clearOnboardingFlow(c)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok": true,
		"partner": fiber.Map{
			"name":        flow.Profile.Name,
			"gender":      flow.Profile.Gender,
			"personality": flow.Profile.Personality,
			"preference":  flow.Profile.Preference,
		},
	})
}

func onboardingView(flow services.OnboardingFlow) fiber.Map {
	return fiber.Map{
		"step":      flow.Step,
		"direction": flow.Direction,
		"profile":   flow.Profile,
	}
}

func onboardingErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrOnboardingStepOrder):
		return "action not allowed at current step"
	case errors.Is(err, services.ErrPartnerNameRequired):
		return "partner name is required"
	case errors.Is(err, services.ErrPartnerNameTooLong):
		return "partner name must be 20 characters or fewer"
	case errors.Is(err, services.ErrUnknownGender):
		return "unknown gender option"
	case errors.Is(err, services.ErrUnknownPersonality):
		return "unknown personality option"
	case errors.Is(err, services.ErrUnknownPreference):
		return "unknown preference option"
	case errors.Is(err, services.ErrPartnerProfileIncomplete):
		return "partner profile is incomplete"
	case errors.Is(err, services.ErrWeakPassword):
		return "password must be at least 8 characters with a letter and a digit"
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return "invalid input"
	}
	return "invalid input"
}
