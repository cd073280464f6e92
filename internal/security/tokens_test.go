package security_test

import (
	"testing"
	"time"

	"github.com/dom/banner-admin/internal/security"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := security.NewTokenManager([]byte("test-secret"), time.Hour).WithClock(fixedClock(issuedAt))
	userID := uuid.New()

	token, issued, err := m.Issue(userID, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, issued.IssuedAt.Equal(issuedAt))
	assert.True(t, issued.ExpiresAt.Equal(issuedAt.Add(time.Hour)))

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.True(t, claims.IssuedAt.Equal(issuedAt))
	assert.True(t, claims.ExpiresAt.Equal(issuedAt.Add(time.Hour)))
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := security.NewTokenManager([]byte("test-secret"), 0)
	assert.Equal(t, security.DefaultTokenTTL, m.TTL())
	assert.Equal(t, time.Hour, m.TTL())
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issuer := security.NewTokenManager([]byte("test-secret"), time.Hour).WithClock(fixedClock(issuedAt))
	token, _, err := issuer.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	expiresAt := issuedAt.Add(time.Hour)

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "immediately after issue", now: issuedAt},
		{name: "one second before expiry", now: expiresAt.Add(-time.Second)},
		{name: "one nanosecond before expiry", now: expiresAt.Add(-time.Nanosecond)},
		{name: "exactly at expiry is rejected", now: expiresAt, wantErr: true},
		{name: "after expiry", now: expiresAt.Add(time.Minute), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := issuer.WithClock(fixedClock(tt.now))
			_, err := verifier.Verify(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, security.ErrInvalidToken)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenManager_RejectsTamperedTokens(t *testing.T) {
	m := security.NewTokenManager([]byte("test-secret"), time.Hour)
	token, _, err := m.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	other := security.NewTokenManager([]byte("other-secret"), time.Hour)
	foreign, _, err := other.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": uuid.New().String(),
		"email":  "a@x.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": uuid.New().String(),
		"email":  "a@x.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	hs512Token, err := hs512.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": uuid.New().String(),
		"email":  "a@x.com",
	})
	noExpToken, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "truncated by one character", token: token[:len(token)-1]},
		{name: "signed with another secret", token: foreign},
		{name: "alg none", token: noneToken},
		{name: "unexpected hmac variant", token: hs512Token},
		{name: "missing expiry", token: noExpToken},
		{name: "malformed", token: "notajwt"},
		{name: "three garbage segments", token: "invalid.token.here"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, security.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
