package services_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/storage"
)

func TestOrderExporter_WritesJSONToDisk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.placeOrder(t, f.alice, item(f.pen, 2), item(f.book, 1))
	f.placeOrder(t, f.bob, item(f.pen, 1))

	disk, err := storage.NewLocalDisk(t.TempDir(), "http://files.test")
	require.NoError(t, err)

	exp, err := services.NewOrderExporter(f.orders, disk).Export(ctx, services.OrderFilter{Customer: f.alice.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 1, exp.Orders)
	assert.True(t, strings.HasPrefix(exp.Path, "exports/orders-"))
	assert.Equal(t, "http://files.test/"+exp.Path, exp.URL)

	raw, err := disk.Get(ctx, exp.Path)
	require.NoError(t, err)

	var doc struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Orders, 1)
	assert.Equal(t, 55.67, doc.Orders[0].Total)
	assert.Equal(t, f.alice.ID, doc.Orders[0].Customer)
}
