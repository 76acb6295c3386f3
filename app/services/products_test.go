package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
)

func TestProductService_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, services.CreateProductInput{Name: "  ", Price: 1})
	assert.True(t, apperr.Is(err, apperr.Validation))
	_, err = f.products.Create(ctx, services.CreateProductInput{Name: "Ink", Price: -1})
	assert.True(t, apperr.Is(err, apperr.Validation))

	free, err := f.products.Create(ctx, services.CreateProductInput{Name: "Sticker", Price: 0})
	require.NoError(t, err)

	got, err := f.products.Read(ctx, free.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Sticker", got.Name)

	_, err = f.products.Read(ctx, "sticker")
	assert.True(t, apperr.Is(err, apperr.InvalidID))
	_, err = f.products.Read(ctx, missingID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = f.products.Update(ctx, free.ID.String(), services.UpdateProductInput{})
	assert.True(t, apperr.Is(err, apperr.InvalidPayload))

	name := "Holo sticker"
	updated, err := f.products.Update(ctx, free.ID.String(), services.UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Holo sticker", updated.Name)
	assert.Zero(t, updated.Price)

	deleted, err := f.products.Delete(ctx, free.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Holo sticker", deleted.Name)
	_, err = f.products.Read(ctx, free.ID.String())
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestProductService_ReadAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	byName, err := f.products.ReadAll(ctx, services.ProductFilter{Name: "NOTE"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, f.book.ID, byName[0].ID)

	lo, hi := 15.0, 25.0
	inRange, err := f.products.ReadAll(ctx, services.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, f.pen.ID, inRange[0].ID)

	empty, err := f.products.ReadAll(ctx, services.ProductFilter{MinPrice: &hi, MaxPrice: &lo})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
