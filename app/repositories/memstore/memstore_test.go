package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/app/repositories/memstore"
	"github.com/shashiranjanraj/shopdesk/app/repositories/repotest"
)

func TestStore(t *testing.T) {
	repotest.Run(t, func(*testing.T) repositories.Store { return memstore.New() })
}

func TestOrders_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New().Orders()

	o := &models.Order{
		Status:   models.StatusActive,
		Customer: models.NewID(),
		Products: []models.LineItem{{Product: models.NewID(), Quantity: 1}},
	}
	require.NoError(t, repo.Insert(ctx, o))

	o.Products[0].Quantity = 99
	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Products[0].Quantity)

	got.Products[0].Quantity = 42
	again, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Products[0].Quantity)
}
