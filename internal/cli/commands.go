package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/averahq/avera/internal/db"
	"github.com/averahq/avera/internal/models"
	"github.com/averahq/avera/internal/security"
)

// RunResetPasswordCommand sets a temporary password on the account and
// forces a change at next login.
func RunResetPasswordCommand(dbPath string, email string) error {
	database, user, err := openAndFindUser(dbPath, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = true
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("✅ Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("User must change password on next login.")

	return nil
}

// RunGrantCreditsCommand tops up an account's free message balance.
// Support uses this for goodwill grants and refunds.
func RunGrantCreditsCommand(dbPath string, email string, amount int) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}

	database, user, err := openAndFindUser(dbPath, email)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	credits := db.NewCreditRepository(database)
	if err := credits.Seed(user.ID, 0, now); err != nil {
		return fmt.Errorf("ensure credit row: %w", err)
	}
	if err := credits.Grant(user.ID, amount, now); err != nil {
		return fmt.Errorf("grant credits: %w", err)
	}

	credit, err := credits.FindByUserID(user.ID)
	if err != nil {
		return fmt.Errorf("reload balance: %w", err)
	}

	fmt.Printf("✅ Granted %d credits to %s (balance: %d)\n", amount, user.Email, credit.FreeMessagesRemaining)
	return nil
}

func openAndFindUser(dbPath string, email string) (*gorm.DB, models.User, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return nil, models.User{}, errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return nil, models.User{}, fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, models.User{}, fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return nil, models.User{}, fmt.Errorf("load user: %w", err)
	}
	return database, user, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
