package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
)

const missingID = "5f8d0d55b54764421b7156c3"

func TestOrderService_CreateComputesTotal(t *testing.T) {
	f := newFixture(t)

	o := f.placeOrder(t, f.alice, item(f.pen, 2), item(f.book, 1))

	assert.Equal(t, 55.67, o.Total)
	assert.Equal(t, models.StatusActive, o.Status)
	assert.Equal(t, f.alice.ID, o.Customer)
	assert.False(t, o.ID.IsZero())
	assert.Equal(t, []models.LineItem{
		{Product: f.pen.ID, Quantity: 2},
		{Product: f.book.ID, Quantity: 1},
	}, o.Products)

	stored, err := f.store.Orders().FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)
	assert.Equal(t, []string{services.EventOrderCreated}, f.events.names())
}

func TestOrderService_TotalIsSumOfLineItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prices := map[string]float64{"dime": 0.1, "fifth": 0.2, "seventy": 0.7, "tea": 19.99, "free": 0}
	catalog := make(map[string]models.Product, len(prices))
	for name, price := range prices {
		p, err := f.products.Create(ctx, services.CreateProductInput{Name: name, Price: price})
		require.NoError(t, err)
		catalog[name] = p
	}

	type line struct {
		product string
		qty     int
	}
	tests := []struct {
		name  string
		lines []line
		want  float64
	}{
		{"three dimes", []line{{"dime", 3}}, 0.3},
		{"dime and fifth", []line{{"dime", 1}, {"fifth", 1}}, 0.3},
		{"mixed cents", []line{{"seventy", 3}, {"fifth", 1}, {"dime", 7}}, 3.0},
		{"many teas", []line{{"tea", 7}, {"dime", 1}}, 140.03},
		{"free item", []line{{"free", 5}, {"tea", 1}}, 19.99},
		{"large quantity", []line{{"dime", 1000}, {"seventy", 333}}, 333.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]services.LineItemInput, len(tt.lines))
			for i, l := range tt.lines {
				items[i] = item(catalog[l.product], l.qty)
			}
			o := f.placeOrder(t, f.alice, items...)
			assert.Equal(t, tt.want, o.Total)
		})
	}
}

func TestOrderService_CreateErrors(t *testing.T) {
	f := newFixture(t)
	customer := f.alice.ID.String()

	tests := []struct {
		name string
		in   services.CreateOrderInput
		want apperr.Kind
	}{
		{"empty payload", services.CreateOrderInput{}, apperr.InvalidPayload},
		{"no customer", services.CreateOrderInput{Products: []services.LineItemInput{item(f.pen, 1)}}, apperr.MissingCustomer},
		{"no products", services.CreateOrderInput{Customer: customer}, apperr.InvalidPayload},
		{"malformed customer", services.CreateOrderInput{Customer: "nope", Products: []services.LineItemInput{item(f.pen, 1)}}, apperr.UnknownCustomer},
		{"absent customer", services.CreateOrderInput{Customer: missingID, Products: []services.LineItemInput{item(f.pen, 1)}}, apperr.UnknownCustomer},
		{"padded customer", services.CreateOrderInput{Customer: " " + customer + " ", Products: []services.LineItemInput{item(f.pen, 1)}}, apperr.UnknownCustomer},
		{"padded product", services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{{Product: " " + f.pen.ID.String(), Quantity: 1}}}, apperr.UnknownProduct},
		{"zero quantity", services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{item(f.pen, 0)}}, apperr.InvalidQuantity},
		{"negative quantity", services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{item(f.pen, -2)}}, apperr.InvalidQuantity},
		{
			"bad quantity after bad product",
			services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{
				{Product: "garbage", Quantity: 1}, item(f.pen, 0),
			}},
			apperr.InvalidQuantity,
		},
		{"malformed product", services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{{Product: "garbage", Quantity: 1}}}, apperr.UnknownProduct},
		{"absent product", services.CreateOrderInput{Customer: customer, Products: []services.LineItemInput{{Product: missingID, Quantity: 1}}}, apperr.ProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err), err.Error())
		})
	}

	all, err := f.store.Orders().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.names())
}

func TestOrderService_Read(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.placeOrder(t, f.alice, item(f.pen, 1))

	got, err := f.orders.Read(ctx, o.ID.String(), f.caller(f.alice))
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.orders.Read(ctx, o.ID.String(), f.caller(f.admin))
	assert.NoError(t, err)

	_, err = f.orders.Read(ctx, o.ID.String(), f.caller(f.bob))
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = f.orders.Read(ctx, missingID, f.caller(f.admin))
	assert.True(t, apperr.Is(err, apperr.OrderNotFound))

	_, err = f.orders.Read(ctx, "not-an-id", f.caller(f.admin))
	assert.True(t, apperr.Is(err, apperr.OrderNotFound))
}

func TestOrderService_ReadAllFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a1 := f.placeOrder(t, f.alice, item(f.pen, 1))
	a2 := f.placeOrder(t, f.alice, item(f.book, 1))
	b1 := f.placeOrder(t, f.bob, item(f.pen, 3))

	done := "COMPLETE"
	_, err := f.orders.Update(ctx, a2.ID.String(), f.caller(f.alice), services.UpdateOrderInput{Status: done})
	require.NoError(t, err)

	ids := func(orders []models.Order) []models.ID {
		out := make([]models.ID, len(orders))
		for i, o := range orders {
			out[i] = o.ID
		}
		return out
	}

	all, err := f.orders.ReadAll(ctx, services.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, []models.ID{a1.ID, a2.ID, b1.ID}, ids(all))

	mine, err := f.orders.ReadAll(ctx, services.OrderFilter{Customer: f.alice.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, []models.ID{a1.ID, a2.ID}, ids(mine))

	active, err := f.orders.ReadAll(ctx, services.OrderFilter{Customer: f.alice.ID.String(), Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, []models.ID{a1.ID}, ids(active))

	none, err := f.orders.ReadAll(ctx, services.OrderFilter{Customer: missingID})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	garbage, err := f.orders.ReadAll(ctx, services.OrderFilter{Customer: "garbage"})
	require.NoError(t, err)
	assert.NotNil(t, garbage)
	assert.Empty(t, garbage)
}

func TestOrderService_Visible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.placeOrder(t, f.alice, item(f.pen, 1))
	f.placeOrder(t, f.bob, item(f.pen, 1))

	all, err := f.orders.Visible(ctx, f.caller(f.admin), services.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.orders.Visible(ctx, f.caller(f.alice), services.OrderFilter{Customer: f.alice.ID.String()})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.orders.Visible(ctx, f.caller(f.alice), services.OrderFilter{})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = f.orders.Visible(ctx, f.caller(f.alice), services.OrderFilter{Customer: f.bob.ID.String()})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	ghost, err := f.orders.Visible(ctx, f.caller(f.alice), services.OrderFilter{Customer: missingID})
	require.NoError(t, err)
	assert.Empty(t, ghost)
}

func TestOrderService_UpdateStatusOnly(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.alice, item(f.pen, 2), item(f.book, 1))

	got, err := f.orders.Update(context.Background(), o.ID.String(), f.caller(f.alice),
		services.UpdateOrderInput{Status: "COMPLETE"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusComplete, got.Status)
	assert.Equal(t, o.Total, got.Total)
	assert.Equal(t, o.Products, got.Products)
	assert.Equal(t, []string{services.EventOrderCreated, services.EventOrderUpdated}, f.events.names())
}

func TestOrderService_UpdateProductsRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.alice, item(f.pen, 2), item(f.book, 1))

	items := []services.LineItemInput{item(f.pen, 3)}
	got, err := f.orders.Update(context.Background(), o.ID.String(), f.caller(f.alice),
		services.UpdateOrderInput{Products: &items})
	require.NoError(t, err)

	assert.Equal(t, 62.97, got.Total)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, []models.LineItem{{Product: f.pen.ID, Quantity: 3}}, got.Products)
}

func TestOrderService_UpdateProductsAndStatus(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.alice, item(f.pen, 1))

	items := []services.LineItemInput{item(f.book, 2)}
	got, err := f.orders.Update(context.Background(), o.ID.String(), f.caller(f.alice),
		services.UpdateOrderInput{Products: &items, Status: "COMPLETE"})
	require.NoError(t, err)

	assert.Equal(t, 27.38, got.Total)
	assert.Equal(t, models.StatusComplete, got.Status)
}

func TestOrderService_UpdateUsesCurrentPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.placeOrder(t, f.alice, item(f.pen, 1))

	price := 10.0
	_, err := f.products.Update(ctx, f.pen.ID.String(), services.UpdateProductInput{Price: &price})
	require.NoError(t, err)

	unchanged, err := f.orders.Read(ctx, o.ID.String(), f.caller(f.alice))
	require.NoError(t, err)
	assert.Equal(t, 20.99, unchanged.Total)

	items := []services.LineItemInput{item(f.pen, 2)}
	got, err := f.orders.Update(ctx, o.ID.String(), f.caller(f.alice), services.UpdateOrderInput{Products: &items})
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Total)
}

func TestOrderService_UpdateErrors(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.alice, item(f.pen, 1))
	id := o.ID.String()

	empty := []services.LineItemInput{}
	zero := []services.LineItemInput{item(f.pen, 0)}
	malformed := []services.LineItemInput{{Product: "garbage", Quantity: 1}}
	absent := []services.LineItemInput{{Product: missingID, Quantity: 1}}
	good := []services.LineItemInput{item(f.book, 1)}

	tests := []struct {
		name   string
		id     string
		caller models.User
		in     services.UpdateOrderInput
		want   apperr.Kind
	}{
		{"empty payload", id, f.alice, services.UpdateOrderInput{}, apperr.InvalidPayload},
		{"empty payload on unknown id", missingID, f.alice, services.UpdateOrderInput{}, apperr.InvalidPayload},
		{"unknown id", missingID, f.alice, services.UpdateOrderInput{Status: "COMPLETE"}, apperr.OrderNotFound},
		{"non owner", id, f.bob, services.UpdateOrderInput{Status: "COMPLETE"}, apperr.Forbidden},
		{"admin is not owner", id, f.admin, services.UpdateOrderInput{Status: "COMPLETE"}, apperr.Forbidden},
		{"lowercase status", id, f.alice, services.UpdateOrderInput{Status: "complete"}, apperr.InvalidStatus},
		{"unknown status", id, f.alice, services.UpdateOrderInput{Status: "SHIPPED"}, apperr.InvalidStatus},
		{"zero quantity", id, f.alice, services.UpdateOrderInput{Products: &zero}, apperr.InvalidQuantity},
		{"malformed product", id, f.alice, services.UpdateOrderInput{Products: &malformed}, apperr.InvalidProduct},
		{"absent product", id, f.alice, services.UpdateOrderInput{Products: &absent}, apperr.InvalidProduct},
		{"bad status with products", id, f.alice, services.UpdateOrderInput{Products: &good, Status: "DONE"}, apperr.InvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.Update(context.Background(), tt.id, f.caller(tt.caller), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err), err.Error())
		})
	}

	stored, err := f.orders.Read(context.Background(), id, f.caller(f.alice))
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)
	assert.Equal(t, models.StatusActive, stored.Status)

	// An empty list is a valid products payload.
	got, err := f.orders.Update(context.Background(), id, f.caller(f.alice), services.UpdateOrderInput{Products: &empty})
	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Empty(t, got.Products)
}

func TestOrderService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.placeOrder(t, f.alice, item(f.pen, 1))

	_, err := f.orders.Delete(ctx, o.ID.String(), f.caller(f.bob))
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	still, err := f.orders.Read(ctx, o.ID.String(), f.caller(f.alice))
	require.NoError(t, err)
	assert.Equal(t, o.Total, still.Total)

	deleted, err := f.orders.Delete(ctx, o.ID.String(), f.caller(f.alice))
	require.NoError(t, err)
	assert.Equal(t, o.ID, deleted.ID)
	assert.Equal(t, o.Total, deleted.Total)

	_, err = f.orders.Read(ctx, o.ID.String(), f.caller(f.alice))
	assert.True(t, apperr.Is(err, apperr.OrderNotFound))

	_, err = f.orders.Delete(ctx, o.ID.String(), f.caller(f.alice))
	assert.True(t, apperr.Is(err, apperr.OrderNotFound))

	assert.Equal(t, []string{services.EventOrderCreated, services.EventOrderDeleted}, f.events.names())
}

func TestNewOrderService_NilNotifier(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrderService(f.users, f.products, f.store.Orders(), nil)

	_, err := svc.Create(context.Background(), services.CreateOrderInput{
		Customer: f.alice.ID.String(),
		Products: []services.LineItemInput{item(f.pen, 1)},
	})
	assert.NoError(t, err)
}
