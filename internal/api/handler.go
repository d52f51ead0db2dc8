package api

import (
	"fmt"
	"time"

	"github.com/averahq/avera/internal/db"
	"github.com/averahq/avera/internal/services"
)

const (
	authCookieName       = "avera_session"
	onboardingCookieName = "avera_onboarding"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL        = 30 * time.Minute
)

// Handler carries the service graph behind the HTTP surface. Optional
// collaborators (model, voice, mailer) may be nil; the routes that need
// them degrade per their own rules.
type Handler struct {
	repos        *db.Repositories
	auth         *services.AuthService
	signup       *services.SignupService
	referrals    *services.ReferralService
	gate         *services.CreditGate
	chat         *services.ChatService
	transcriber  services.VoiceTranscriber
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	cookieCodec  *secureCookieCodec
	loginLimiter *attemptLimiter
}

type HandlerConfig struct {
	Repos        *db.Repositories
	Auth         *services.AuthService
	Signup       *services.SignupService
	Referrals    *services.ReferralService
	Gate         *services.CreditGate
	Chat         *services.ChatService
	Transcriber  services.VoiceTranscriber
	SecretKey    []byte
	Location     *time.Location
	CookieSecure bool
}

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Repos == nil {
		return nil, fmt.Errorf("handler requires repositories")
	}
	if len(config.SecretKey) == 0 {
		return nil, fmt.Errorf("handler requires a secret key")
	}

	codec, err := newSecureCookieCodec(config.SecretKey)
	if err != nil {
		return nil, err
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		repos:        config.Repos,
		auth:         config.Auth,
		signup:       config.Signup,
		referrals:    config.Referrals,
		gate:         config.Gate,
		chat:         config.Chat,
		transcriber:  config.Transcriber,
		secretKey:    config.SecretKey,
		location:     location,
		cookieSecure: config.CookieSecure,
		cookieCodec:  codec,
		loginLimiter: newAttemptLimiter(),
	}, nil
}
