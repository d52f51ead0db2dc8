package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/averahq/avera/internal/db"
	"github.com/averahq/avera/internal/models"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordAlphabet(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}

	for _, char := range password {
		if !strings.ContainsRune(alphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func seedCLIUser(t *testing.T, dbPath string, email string) models.User {
	t.Helper()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("abcd1234"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Country:      models.DefaultCountry,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRunResetPasswordCommandForcesChange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "avera.db")
	seedCLIUser(t, dbPath, "a@b.com")

	if err := RunResetPasswordCommand(dbPath, "  A@B.COM "); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	var user models.User
	if err := database.Where("email = ?", "a@b.com").First(&user).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !user.MustChangePassword {
		t.Fatal("expected must_change_password to be set")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("abcd1234")) == nil {
		t.Fatal("expected old password to be replaced")
	}
}

func TestRunResetPasswordCommandUnknownUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "avera.db")

	if err := RunResetPasswordCommand(dbPath, "nobody@example.com"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestRunGrantCreditsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "avera.db")
	user := seedCLIUser(t, dbPath, "a@b.com")

	if err := RunGrantCreditsCommand(dbPath, "a@b.com", 5); err != nil {
		t.Fatalf("grant credits: %v", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	credits := db.NewCreditRepository(database)
	credit, err := credits.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("load credits: %v", err)
	}
	if credit.FreeMessagesRemaining != 5 {
		t.Fatalf("expected balance 5, got %d", credit.FreeMessagesRemaining)
	}

	if err := RunGrantCreditsCommand(dbPath, "a@b.com", 0); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
}
