package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"

	"github.com/averahq/avera/internal/api"
	"github.com/averahq/avera/internal/db"
	"github.com/averahq/avera/internal/services"
)

func main() {
	_ = godotenv.Load()

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "avera.db"))
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repos := db.NewRepositories(database)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var model services.ModelClient
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		modelBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "gemini",
			Timeout: 30 * time.Second,
		})
		geminiClient, err := services.NewGeminiClient(lifecycleCtx, apiKey, getEnv("GEMINI_MODEL", "gemini-2.5-flash"), modelBreaker)
		if err != nil {
			log.Fatalf("gemini init failed: %v", err)
		}
		model = geminiClient
	} else {
		log.Printf("GEMINI_API_KEY not set, chat replies are disabled")
	}

	var voice *services.ElevenLabsVoiceService
	if apiKey := os.Getenv("ELEVENLABS_API_KEY"); apiKey != "" {
		voiceBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "elevenlabs",
			Timeout: 30 * time.Second,
		})
		voice = services.NewElevenLabsVoiceService(nil, os.Getenv("ELEVENLABS_BASE_URL"), apiKey, voiceBreaker)
	}

	var mailer services.WelcomeMailer
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		mailer = services.NewResendWelcomeMailer(apiKey, getEnv("MAIL_FROM", "Avera <hello@avera.app>"))
	}

	auth := services.NewAuthService(repos.Users)
	referrals := services.NewReferralService(repos.Referrals)
	gate := services.NewCreditGate(repos.Credits, repos.Subscriptions, func(userID uint) {
		log.Printf("credits exhausted for user %d", userID)
	})
	geo := services.NewIPAPICountryResolver(nil, os.Getenv("IPAPI_BASE_URL"))
	signup := services.NewSignupService(repos.Users, repos.Partners, repos.Credits, referrals, geo, mailer, location)

	var synthesizer services.VoiceSynthesizer
	var transcriber services.VoiceTranscriber
	if voice != nil {
		synthesizer = voice
		transcriber = voice
	}
	chat := services.NewChatService(repos.Partners, repos.Conversations, repos.Gifts, gate, model, synthesizer, location)

	handler, err := api.NewHandler(api.HandlerConfig{
		Repos:        repos,
		Auth:         auth,
		Signup:       signup,
		Referrals:    referrals,
		Gate:         gate,
		Chat:         chat,
		Transcriber:  transcriber,
		SecretKey:    []byte(secretKey),
		Location:     location,
		CookieSecure: cookieSecure,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Avera",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Avera listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == "change_me_in_production":
		return "", errors.New("SECRET_KEY still uses the insecure placeholder")
	case len(secret) < 32:
		return "", errors.New("SECRET_KEY must be at least 32 characters")
	}
	return secret, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
