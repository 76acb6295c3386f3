package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
)

func TestUserService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, models.RoleCustomer, f.alice.Role)
	assert.Equal(t, models.RoleAdmin, f.admin.Role)
	assert.NotEqual(t, "secret", f.alice.Password)
	assert.True(t, auth.NewPasswordHasher(4).Check(f.alice.Password, "secret"))

	_, err := f.users.Create(ctx, services.CreateUserInput{Username: "alice", Password: "other"})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	_, err = f.users.Create(ctx, services.CreateUserInput{Username: "x y", Password: "ab", Role: "ROOT"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Validation, e.Kind)
	assert.Contains(t, e.Fields, "username")
	assert.Contains(t, e.Fields, "password")
	assert.Contains(t, e.Fields, "role")
}

func TestUserService_Read(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Read(ctx, f.bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = f.users.Read(ctx, "bob")
	assert.True(t, apperr.Is(err, apperr.InvalidID))

	_, err = f.users.Read(ctx, missingID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	one, err := f.users.ReadOne(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, one.ID)

	_, err = f.users.ReadOne(ctx, "nobody")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUserService_ReadAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.users.ReadAll(ctx, services.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admins, err := f.users.ReadAll(ctx, services.UserFilter{Role: "ADMIN"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)

	byName, err := f.users.ReadAll(ctx, services.UserFilter{Username: "bob"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, f.bob.ID, byName[0].ID)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Update(ctx, f.bob.ID.String(), services.UpdateUserInput{})
	assert.True(t, apperr.Is(err, apperr.InvalidPayload))

	_, err = f.users.Update(ctx, f.bob.ID.String(), services.UpdateUserInput{Role: "GOD"})
	assert.True(t, apperr.Is(err, apperr.Validation))

	u, err := f.users.Update(ctx, f.bob.ID.String(), services.UpdateUserInput{Password: "changed", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = f.users.Authenticate(ctx, "bob", "secret")
	assert.True(t, apperr.Is(err, apperr.InvalidCredentials))
	_, err = f.users.Authenticate(ctx, "bob", "changed")
	assert.NoError(t, err)

	_, err = f.users.Update(ctx, missingID, services.UpdateUserInput{Role: "ADMIN"})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Delete(ctx, f.bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = f.users.Read(ctx, f.bob.ID.String())
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = f.users.Delete(ctx, f.bob.ID.String())
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUserService_AuthenticateAndCaller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, u.ID)

	_, err = f.users.Authenticate(ctx, "alice", "wrong")
	assert.True(t, apperr.Is(err, apperr.InvalidCredentials))
	_, err = f.users.Authenticate(ctx, "ghost", "secret")
	assert.True(t, apperr.Is(err, apperr.InvalidCredentials))

	c, err := f.users.Caller(ctx, "root")
	require.NoError(t, err)
	assert.True(t, c.IsAdmin())
	assert.Equal(t, f.admin.ID, c.ID)

	_, err = f.users.Caller(ctx, "ghost")
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestAuthService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tokens := auth.NewJWT("test-secret", 0, "shopdesk")
	svc := services.NewAuthService(f.users, tokens)

	token, err := svc.Authenticate(ctx, services.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID.String(), claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "CUSTOMER", claims.Role)

	_, err = svc.Authenticate(ctx, services.Credentials{Username: "alice", Password: "nope"})
	assert.True(t, apperr.Is(err, apperr.InvalidCredentials))

	token, err = svc.Register(ctx, services.Credentials{Username: "carol", Password: "pass1"})
	require.NoError(t, err)
	claims, err = tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "carol", claims.Username)
	assert.Equal(t, "CUSTOMER", claims.Role)

	_, err = svc.Register(ctx, services.Credentials{Username: "carol", Password: "pass1"})
	assert.True(t, apperr.Is(err, apperr.Conflict))
}
