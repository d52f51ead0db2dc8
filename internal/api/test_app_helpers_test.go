package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/averahq/avera/internal/db"
	"github.com/averahq/avera/internal/models"
	"github.com/averahq/avera/internal/services"
)

// stubModelClient replies with a fixed line so chat tests run without
// the hosted model.
type stubModelClient struct {
	reply string
}

func (client stubModelClient) Reply(ctx context.Context, systemPrompt string, history []services.ChatTurn, userMessage string) (string, error) {
	if client.reply == "" {
		return "I'm here with you 💕", nil
	}
	return client.reply, nil
}

type testApp struct {
	app   *fiber.App
	repos *db.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "avera.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	repos := db.NewRepositories(database)
	auth := services.NewAuthService(repos.Users)
	referrals := services.NewReferralService(repos.Referrals)
	gate := services.NewCreditGate(repos.Credits, repos.Subscriptions, nil)
	signup := services.NewSignupService(repos.Users, repos.Partners, repos.Credits, referrals, nil, nil, time.UTC)
	chat := services.NewChatService(repos.Partners, repos.Conversations, repos.Gifts, gate, stubModelClient{}, nil, time.UTC)

	handler, err := NewHandler(HandlerConfig{
		Repos:     repos,
		Auth:      auth,
		Signup:    signup,
		Referrals: referrals,
		Gate:      gate,
		Chat:      chat,
		SecretKey: []byte("test-secret-key"),
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)

	return &testApp{app: app, repos: repos}
}

// request sends a JSON request carrying the given cookies and folds
// any Set-Cookie headers from the response back into the jar.
func (fixture *testApp) request(t *testing.T, method string, path string, payload any, jar map[string]string) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")
	for name, value := range jar {
		request.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	if jar != nil {
		for _, cookie := range response.Cookies() {
			if cookie.Value == "" || cookie.Expires.Before(time.Now().Add(-time.Minute)) && !cookie.Expires.IsZero() {
				delete(jar, cookie.Name)
				continue
			}
			jar[cookie.Name] = cookie.Value
		}
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func requireStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, response.StatusCode)
	}
}

// walkOnboarding drives the wizard from welcome to the signup step.
func (fixture *testApp) walkOnboarding(t *testing.T, jar map[string]string, name string, gender string, personality string, preference string) {
	t.Helper()

	requireStatus(t, fixture.request(t, http.MethodGet, "/api/onboarding", nil, jar), http.StatusOK)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/advance", map[string]any{}, jar), http.StatusOK)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/advance", map[string]any{
		"gender": gender, "personality": personality,
	}, jar), http.StatusOK)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/advance", map[string]any{
		"name": name,
	}, jar), http.StatusOK)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/advance", map[string]any{
		"preference": preference,
	}, jar), http.StatusOK)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/advance", map[string]any{}, jar), http.StatusOK)
}

// signUpUser creates a full account through the public onboarding
// surface and returns the cookie jar holding its session.
func (fixture *testApp) signUpUser(t *testing.T, email string, password string) map[string]string {
	t.Helper()

	jar := map[string]string{}
	fixture.walkOnboarding(t, jar, "Mira", models.GenderFemale, models.PersonalityFlirtyPlayful, models.PreferenceLove)
	requireStatus(t, fixture.request(t, http.MethodPost, "/api/onboarding/complete", map[string]any{
		"email": email, "password": password,
	}, jar), http.StatusCreated)

	if jar[authCookieName] == "" {
		t.Fatal("expected auth cookie after signup")
	}
	return jar
}

func (fixture *testApp) createUser(t *testing.T, email string, password string, mustChange bool) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:              email,
		PasswordHash:       string(passwordHash),
		Country:            models.DefaultCountry,
		MustChangePassword: mustChange,
		CreatedAt:          time.Now().UTC(),
	}
	if err := fixture.repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
