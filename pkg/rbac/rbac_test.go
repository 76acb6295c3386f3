package rbac_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/shopdesk/pkg/middleware"
	"github.com/shashiranjanraj/shopdesk/pkg/rbac"
)

func requestAs(id *middleware.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if id != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *id))
	}
	return req
}

func guarded(lookup rbac.RoleLookup) http.Handler {
	return rbac.HasRole(lookup, rbac.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestHasRole_TokenClaim(t *testing.T) {
	h := guarded(nil)

	cases := map[string]struct {
		id     *middleware.Identity
		status int
	}{
		"admin":     {&middleware.Identity{UserID: "1", Username: "root", Role: "ADMIN"}, http.StatusOK},
		"customer":  {&middleware.Identity{UserID: "2", Username: "bob", Role: "CUSTOMER"}, http.StatusForbidden},
		"anonymous": {nil, http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestAs(tc.id))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHasRole_StoredRoleWins(t *testing.T) {
	stored := map[string]string{"ops": "CUSTOMER", "bob": "ADMIN"}
	h := guarded(func(_ context.Context, username string) (string, error) {
		role, ok := stored[username]
		if !ok {
			return "", errors.New("no such user")
		}
		return role, nil
	})

	cases := map[string]struct {
		id     *middleware.Identity
		status int
	}{
		"demoted admin": {&middleware.Identity{Username: "ops", Role: "ADMIN"}, http.StatusForbidden},
		"promoted user": {&middleware.Identity{Username: "bob", Role: "CUSTOMER"}, http.StatusOK},
		"deleted user":  {&middleware.Identity{Username: "gone", Role: "ADMIN"}, http.StatusForbidden},
		"no username":   {&middleware.Identity{Role: "ADMIN"}, http.StatusForbidden},
		"anonymous":     {nil, http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestAs(tc.id))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
