package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	onboarding := api.Group("/onboarding")
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Post("/advance", handler.AdvanceOnboarding)
	onboarding.Post("/edit", handler.EditOnboarding)
	onboarding.Post("/complete", handler.CompleteOnboarding)

	api.Get("/credits", handler.AuthRequired, handler.GetCredits)
	api.Get("/referrals", handler.AuthRequired, handler.GetReferrals)
	api.Get("/subscription", handler.AuthRequired, handler.GetSubscription)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Get("/conversation", handler.GetConversation)
	chat.Post("/messages", handler.SendMessage)
	chat.Get("/gifts", handler.GetGiftCatalog)
	chat.Post("/gifts", handler.SendGift)
	chat.Post("/transcribe", handler.Transcribe)
}
