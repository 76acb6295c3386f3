// Package repotest is a conformance suite every repositories.Store backend
// runs from its own tests.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

// Run exercises store. newStore must return an empty store per call.
func Run(t *testing.T, newStore func(t *testing.T) repositories.Store) {
	t.Run("users", func(t *testing.T) { users(t, newStore(t)) })
	t.Run("products", func(t *testing.T) { products(t, newStore(t)) })
	t.Run("orders", func(t *testing.T) { orders(t, newStore(t)) })
}

func users(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Users()

	alice := &models.User{Username: "alice", Password: "hash", Role: models.RoleCustomer}
	require.NoError(t, repo.Insert(ctx, alice))
	require.False(t, alice.ID.IsZero())
	assert.False(t, alice.CreatedAt.IsZero())

	admin := &models.User{Username: "root", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, repo.Insert(ctx, admin))

	err := repo.Insert(ctx, &models.User{Username: "alice", Password: "x", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.Password)

	got, err = repo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.FindByID(ctx, models.NewID())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	all, err := repo.FindAll(ctx, repositories.UserQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admins, err := repo.FindAll(ctx, repositories.UserQuery{Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)

	none, err := repo.FindAll(ctx, repositories.UserQuery{Username: "ghost"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	got, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	got.Role = models.RoleAdmin
	require.NoError(t, repo.Update(ctx, &got))
	got, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	got.Username = "root"
	assert.ErrorIs(t, repo.Update(ctx, &got), repositories.ErrDuplicate)

	ghost := models.User{ID: models.NewID(), Username: "ghost", Role: models.RoleCustomer}
	assert.ErrorIs(t, repo.Update(ctx, &ghost), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, alice.ID))
	assert.ErrorIs(t, repo.Delete(ctx, alice.ID), repositories.ErrNotFound)
	_, err = repo.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func products(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Products()

	mug := &models.Product{Name: "Coffee Mug", Price: 20.99}
	pen := &models.Product{Name: "Pen", Price: 13.69}
	require.NoError(t, repo.Insert(ctx, mug))
	require.NoError(t, repo.Insert(ctx, pen))

	got, err := repo.FindByID(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.99, got.Price)

	byName, err := repo.FindAll(ctx, repositories.ProductQuery{Name: "mug"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, mug.ID, byName[0].ID)

	lo, hi := 10.0, 15.0
	inRange, err := repo.FindAll(ctx, repositories.ProductQuery{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, pen.ID, inRange[0].ID)

	got.Price = 25
	require.NoError(t, repo.Update(ctx, &got))
	got, err = repo.FindByID(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.Price)

	require.NoError(t, repo.Delete(ctx, pen.ID))
	_, err = repo.FindByID(ctx, pen.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, pen.ID), repositories.ErrNotFound)
}

func orders(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	repo := s.Orders()

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	customer, product := models.NewID(), models.NewID()
	first := &models.Order{
		Status:   models.StatusActive,
		Total:    41.98,
		Customer: customer,
		Products: []models.LineItem{{Product: product, Quantity: 2}},
	}
	second := &models.Order{
		Status:   models.StatusComplete,
		Total:    0,
		Customer: models.NewID(),
		Products: []models.LineItem{},
	}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, customer, got.Customer)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, 41.98, got.Total)
	assert.Equal(t, []models.LineItem{{Product: product, Quantity: 2}}, got.Products)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	got.Status = models.StatusComplete
	got.Products = append(got.Products, models.LineItem{Product: models.NewID(), Quantity: 1})
	require.NoError(t, repo.Update(ctx, &got))
	got, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, got.Status)
	assert.Len(t, got.Products, 2)

	missing := models.Order{ID: models.NewID(), Status: models.StatusActive, Customer: customer}
	assert.ErrorIs(t, repo.Update(ctx, &missing), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repositories.ErrNotFound)
}
