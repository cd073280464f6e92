package service_test

import (
	"context"
	"testing"

	"github.com/dom/banner-admin/internal/security"
	"github.com/dom/banner-admin/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.CreateUserInput
		wantErr error
	}{
		{
			name:  "creates hashed user",
			input: service.CreateUserInput{Email: "a@x.com", Password: "pw1", Name: "Alice"},
		},
		{
			name:    "missing email",
			input:   service.CreateUserInput{Password: "pw1"},
			wantErr: service.ErrMissingCredentials,
		},
		{
			name:    "missing password",
			input:   service.CreateUserInput{Email: "a@x.com"},
			wantErr: service.ErrMissingCredentials,
		},
		{
			name:    "duplicate email",
			input:   service.CreateUserInput{Email: "dup@x.com", Password: "pw1"},
			wantErr: service.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemUserRepo()
			userService := service.NewUserService(repo, security.NewHasher(bcrypt.MinCost))
			_, err := userService.Create(ctx, service.CreateUserInput{Email: "dup@x.com", Password: "pw"})
			require.NoError(t, err)

			user, err := userService.Create(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Alice", user.Name)
			assert.NotEqual(t, "pw1", user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	userService := service.NewUserService(repo, security.NewHasher(bcrypt.MinCost))

	alice, err := userService.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "pw1", Name: "Alice"})
	require.NoError(t, err)
	_, err = userService.Create(ctx, service.CreateUserInput{Email: "b@x.com", Password: "pw2"})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := userService.Update(ctx, alice.ID, service.UpdateUserInput{Name: strPtr("Alicia")})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, "a@x.com", updated.Email)
		assert.Equal(t, alice.PasswordHash, updated.PasswordHash)
	})

	t.Run("password change is hashed", func(t *testing.T) {
		updated, err := userService.Update(ctx, alice.ID, service.UpdateUserInput{Password: strPtr("newpw")})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpw")))
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := userService.Update(ctx, alice.ID, service.UpdateUserInput{Email: strPtr("b@x.com")})
		assert.ErrorIs(t, err, service.ErrUserExists)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		_, err := userService.Update(ctx, alice.ID, service.UpdateUserInput{Email: strPtr("")})
		assert.ErrorIs(t, err, service.ErrMissingCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := userService.Update(ctx, uuid.New(), service.UpdateUserInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestUserService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	userService := service.NewUserService(repo, security.NewHasher(bcrypt.MinCost))

	created, err := userService.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	users, err := userService.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].ID)

	got, err := userService.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = userService.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
