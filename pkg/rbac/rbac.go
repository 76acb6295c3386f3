// Package rbac provides role-based access control on top of the identity
// stored by middleware.Auth.
package rbac

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/middleware"
	"github.com/shashiranjanraj/shopdesk/pkg/response"
)

// RoleAdmin is the role that passes every check in this package.
const RoleAdmin = "ADMIN"

// RoleLookup returns the role currently stored for username.
type RoleLookup func(ctx context.Context, username string) (string, error)

// HasRole returns middleware that allows access only to callers with one of
// the given roles. middleware.Auth must run first.
//
// The caller's role is read through lookup, so a role change applies to
// tokens issued before it. A nil lookup trusts the token's role claim.
func HasRole(lookup RoleLookup, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := roleOf(r, lookup)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleOf(r *http.Request, lookup RoleLookup) (string, bool) {
	if lookup == nil {
		return middleware.RoleFromCtx(r)
	}
	id, ok := middleware.IdentityFromCtx(r)
	if !ok || id.Username == "" {
		return "", false
	}
	role, err := lookup(r.Context(), id.Username)
	if err != nil {
		logger.WithCtx(r.Context()).Debug("rbac: role lookup failed", "username", id.Username, "error", err)
		return "", false
	}
	return role, role != ""
}
