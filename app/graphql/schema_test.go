package graphql_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgql "github.com/shashiranjanraj/shopdesk/app/graphql"
	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories/memstore"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
)

type world struct {
	schema graphql.Schema
	caller models.Caller
	alice  models.User
	bob    models.User
	order  models.Order
	pen    models.Product
}

func setup(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	users := services.NewUserService(store.Users(), auth.NewPasswordHasher(4))
	products := services.NewProductService(store.Products())
	orders := services.NewOrderService(users, products, store.Orders(), nil)

	w := &world{}
	var err error
	w.alice, err = users.Create(ctx, services.CreateUserInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	w.bob, err = users.Create(ctx, services.CreateUserInput{Username: "bob", Password: "secret"})
	require.NoError(t, err)
	w.pen, err = products.Create(ctx, services.CreateProductInput{Name: "Pen", Price: 20.99})
	require.NoError(t, err)
	w.order, err = orders.Create(ctx, services.CreateOrderInput{
		Customer: w.alice.ID.String(),
		Products: []services.LineItemInput{{Product: w.pen.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	w.caller = models.CallerOf(w.alice)
	w.schema, err = appgql.NewSchema(appgql.Resolvers{
		Orders:   orders,
		Products: products,
		Caller:   func(context.Context) (models.Caller, error) { return w.caller, nil },
	})
	require.NoError(t, err)
	return w
}

func (w *world) run(t *testing.T, query string, vars map[string]any) (map[string]any, []string) {
	t.Helper()
	res := graphql.Do(graphql.Params{
		Schema:         w.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	var msgs []string
	for _, e := range res.Errors {
		msgs = append(msgs, e.Message)
	}
	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	return data, msgs
}

func TestSchema_OwnerSeesOrders(t *testing.T) {
	w := setup(t)

	data, errs := w.run(t, `query($c: String){ orders(customer: $c) { id total status products { product quantity } } }`,
		map[string]any{"c": w.alice.ID.String()})
	require.Empty(t, errs)

	orders := data["orders"].([]any)
	require.Len(t, orders, 1)
	o := orders[0].(map[string]any)
	assert.Equal(t, w.order.ID.String(), o["id"])
	assert.Equal(t, 41.98, o["total"])
	assert.Equal(t, "ACTIVE", o["status"])
	items := o["products"].([]any)
	assert.Equal(t, w.pen.ID.String(), items[0].(map[string]any)["product"])
}

func TestSchema_AppliesOrderAuthorization(t *testing.T) {
	w := setup(t)
	w.caller = models.CallerOf(w.bob)

	_, errs := w.run(t, `{ orders { id } }`, nil)
	assert.NotEmpty(t, errs)

	_, errs = w.run(t, `query($id: String!){ order(id: $id) { id } }`, map[string]any{"id": w.order.ID.String()})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "unauthorized")

	w.caller = models.Caller{ID: models.NewID(), Role: models.RoleAdmin}
	data, errs := w.run(t, `{ orders { id customer } }`, nil)
	require.Empty(t, errs)
	assert.Len(t, data["orders"], 1)
}

func TestSchema_Products(t *testing.T) {
	w := setup(t)

	data, errs := w.run(t, `{ products(name: "pe", maxPrice: 50) { id name price } }`, nil)
	require.Empty(t, errs)
	list := data["products"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Pen", list[0].(map[string]any)["name"])

	data, errs = w.run(t, `query($id: String!){ product(id: $id) { name price } }`, map[string]any{"id": w.pen.ID.String()})
	require.Empty(t, errs)
	assert.Equal(t, 20.99, data["product"].(map[string]any)["price"])
}
