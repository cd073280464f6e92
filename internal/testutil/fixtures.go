package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
}

// NewUserBuilder creates a new UserBuilder with a unique email
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// UserJSON matches the user object in API responses
type UserJSON struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse matches the API login response
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserJSON  `json:"user"`
}

// BuildAndAuthenticate signs the user up and logs in via the API, returning
// the user and a bearer token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	creds := map[string]string{"email": b.email, "password": b.password}

	resp := PostJSON(t, ts.APIURL("/auth/signup"), creds)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: unexpected status code: %d", resp.StatusCode)
	}

	resp = PostJSON(t, ts.APIURL("/auth/login"), creds)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: unexpected status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(loginResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: loginResp.User.Email,
	}

	return user, loginResp.Token
}

// BannerBuilder creates test banners with a builder pattern
type BannerBuilder struct {
	title     string
	visible   bool
	countdown int
}

func NewBannerBuilder() *BannerBuilder {
	return &BannerBuilder{
		title: fmt.Sprintf("banner_%s", uuid.New().String()[:8]),
	}
}

func (b *BannerBuilder) WithTitle(title string) *BannerBuilder {
	b.title = title
	return b
}

func (b *BannerBuilder) WithVisible(visible bool) *BannerBuilder {
	b.visible = visible
	return b
}

func (b *BannerBuilder) WithCountdown(seconds int) *BannerBuilder {
	b.countdown = seconds
	return b
}

// Build inserts the banner directly, bypassing the service and its timers
func (b *BannerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Banner {
	t.Helper()

	banner := &domain.Banner{
		ID:          uuid.New(),
		Title:       b.title,
		Description: "test banner",
		ImageURL:    "https://example.com/banner.png",
		Link:        "https://example.com",
		Visible:     b.visible,
		Countdown:   b.countdown,
	}

	if err := db.Create(banner).Error; err != nil {
		t.Fatalf("failed to create banner: %v", err)
	}

	return banner
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req with the default client
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL, err)
	}
	return resp
}

// PostJSON posts body as JSON without authentication
func PostJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	return Do(t, CreateAuthenticatedRequest(t, http.MethodPost, url, body, ""))
}
