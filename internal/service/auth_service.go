package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/dom/banner-admin/internal/repository"
	"github.com/dom/banner-admin/internal/security"
	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoToken            = errors.New("no token provided")
	ErrInvalidToken       = security.ErrInvalidToken
)

type AuthService struct {
	userRepo  repository.UserRepository
	hasher    *security.Hasher
	tokens    *security.TokenManager
	dummyHash string
}

func NewAuthService(userRepo repository.UserRepository, hasher *security.Hasher, tokens *security.TokenManager) *AuthService {
	// Compared against when the email is unknown so both login failures cost one bcrypt round.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		panic(fmt.Sprintf("service: hash login placeholder: %v", err))
	}
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

type SignupInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Signup registers a new user. The uniqueness check is advisory; the store's
// unique index is authoritative, and a violation there is reported as
// ErrUserExists as well.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Verify checks a bare token. It touches no store.
func (s *AuthService) Verify(token string) (*security.Claims, error) {
	return s.tokens.Verify(token)
}

// VerifyHeader checks an Authorization header value. Anything not of the
// form "Bearer <token>" fails with ErrNoToken before any signature check.
func (s *AuthService) VerifyHeader(header string) (*security.Claims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrNoToken
	}
	return s.Verify(strings.TrimPrefix(header, bearerPrefix))
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
