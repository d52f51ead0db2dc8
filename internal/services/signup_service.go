package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/averahq/avera/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already exists")

type SignupUserStore interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(user *models.User) error
	UpdateCountry(userID uint, country string) error
}

type SignupPartnerStore interface {
	Create(partner *models.AIPartner) error
}

type SignupCreditStore interface {
	Seed(userID uint, grant int, now time.Time) error
}

// SignupService runs the terminal onboarding action: it turns a
// completed partner profile plus credentials into an account, a
// persisted partner record, and the initial credit grant.
type SignupService struct {
	users     SignupUserStore
	partners  SignupPartnerStore
	credits   SignupCreditStore
	referrals *ReferralService
	geo       CountryResolver
	mailer    WelcomeMailer
	location  *time.Location
}

func NewSignupService(
	users SignupUserStore,
	partners SignupPartnerStore,
	credits SignupCreditStore,
	referrals *ReferralService,
	geo CountryResolver,
	mailer WelcomeMailer,
	location *time.Location,
) *SignupService {
	if location == nil {
		location = time.UTC
	}
	return &SignupService{
		users:     users,
		partners:  partners,
		credits:   credits,
		referrals: referrals,
		geo:       geo,
		mailer:    mailer,
		location:  location,
	}
}

// Complete performs the signup sequence in order. Account creation and
// partner persistence are hard requirements; the country lookup,
// referral bookkeeping, region update, and welcome email are
// best-effort and never fail the signup. A partner-persistence failure
// after the credential exists is reported as a failed signup — the
// known inconsistency window is accepted rather than rolled back.
func (service *SignupService) Complete(
	ctx context.Context,
	profile PartnerProfile,
	emailRaw string,
	passwordRaw string,
	referralCode string,
	clientIP string,
) (models.User, error) {
	if !profile.Complete() {
		return models.User{}, ErrPartnerProfileIncomplete
	}

	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().In(service.location)
	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Country:      models.DefaultCountry,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}

	country := models.DefaultCountry
	if service.geo != nil {
		country = service.geo.ResolveCountry(ctx, clientIP)
	}

	if referralCode != "" && service.referrals != nil {
		if err := service.referrals.Apply(referralCode, user.ID, now); err != nil {
			log.Printf("signup: referral %q not applied for user %d: %v", referralCode, user.ID, err)
		}
	}

	partner := models.AIPartner{
		UserID:      user.ID,
		Name:        profile.Name,
		Gender:      profile.Gender,
		Personality: profile.Personality,
		Preference:  profile.Preference,
		CreatedAt:   now,
	}
	if err := service.partners.Create(&partner); err != nil {
		return models.User{}, err
	}

	if country != user.Country {
		if err := service.users.UpdateCountry(user.ID, country); err != nil {
			log.Printf("signup: country update failed for user %d: %v", user.ID, err)
		}
	}

	if err := service.credits.Seed(user.ID, models.FreeMessageGrant, now); err != nil {
		log.Printf("signup: credit seed failed for user %d: %v", user.ID, err)
	}

	if service.referrals != nil {
		if _, err := service.referrals.IssueCode(user.ID, now); err != nil {
			log.Printf("signup: referral code issue failed for user %d: %v", user.ID, err)
		}
	}

	if service.mailer != nil {
		if err := service.mailer.SendWelcome(user.Email, partner.Name); err != nil {
			log.Printf("signup: welcome email failed for %s: %v", user.Email, err)
		}
	}

	return user, nil
}
