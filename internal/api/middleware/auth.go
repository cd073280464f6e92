package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dom/banner-admin/internal/api/render"
	"github.com/dom/banner-admin/internal/security"
	"github.com/dom/banner-admin/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
)

// HeaderVerifier validates an Authorization header value.
type HeaderVerifier interface {
	VerifyHeader(header string) (*security.Claims, error)
}

// Identity is the authenticated caller, attached to the request context by Auth.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Auth rejects requests without a valid bearer token with 401 and stops the
// chain. A missing or non-Bearer header is reported as "No token provided",
// a bad signature or expired token as "Invalid token".
func Auth(verifier HeaderVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.VerifyHeader(r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, service.ErrNoToken) {
					render.Error(w, http.StatusUnauthorized, msgNoToken)
					return
				}
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				render.Error(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:    claims.UserID,
				Email:     claims.Email,
				IssuedAt:  claims.IssuedAt,
				ExpiresAt: claims.ExpiresAt,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
