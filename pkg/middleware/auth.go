package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/shopdesk/pkg/auth"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/response"
)

// TokenVerifier validates a bearer token. *auth.JWT satisfies it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Identity is what the Auth middleware learns from a valid token.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by Auth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IdentityFromCtx is IdentityFromContext for a request.
func IdentityFromCtx(r *http.Request) (Identity, bool) {
	return IdentityFromContext(r.Context())
}

// RoleFromCtx returns the caller's role claim.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	if !ok || id.Role == "" {
		return "", false
	}
	return id.Role, true
}

// Auth rejects requests without a valid bearer token with 403 and stores the
// caller's identity in the request context otherwise.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Forbidden(w)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("auth: token rejected", "error", err)
				response.Forbidden(w)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   claims.UserID(),
				Username: claims.Username,
				Role:     claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
