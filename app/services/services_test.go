package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories/memstore"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
)

type recordedEvent struct {
	name  string
	order models.Order
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Notify(_ context.Context, event string, o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event, o})
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.name
	}
	return out
}

type fixture struct {
	store    *memstore.Store
	users    *services.UserService
	products *services.ProductService
	orders   *services.OrderService
	events   *recorder

	alice, bob, admin models.User
	pen, book         models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	f := &fixture{
		store:    store,
		users:    services.NewUserService(store.Users(), auth.NewPasswordHasher(4)),
		products: services.NewProductService(store.Products()),
		events:   &recorder{},
	}
	f.orders = services.NewOrderService(f.users, f.products, store.Orders(), f.events)

	var err error
	f.alice, err = f.users.Create(ctx, services.CreateUserInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	f.bob, err = f.users.Create(ctx, services.CreateUserInput{Username: "bob", Password: "secret"})
	require.NoError(t, err)
	f.admin, err = f.users.Create(ctx, services.CreateUserInput{Username: "root", Password: "secret", Role: "ADMIN"})
	require.NoError(t, err)

	f.pen, err = f.products.Create(ctx, services.CreateProductInput{Name: "Fountain pen", Price: 20.99})
	require.NoError(t, err)
	f.book, err = f.products.Create(ctx, services.CreateProductInput{Name: "Notebook", Price: 13.69})
	require.NoError(t, err)

	return f
}

func (f *fixture) caller(u models.User) models.Caller { return models.CallerOf(u) }

func (f *fixture) placeOrder(t *testing.T, owner models.User, items ...services.LineItemInput) models.Order {
	t.Helper()
	o, err := f.orders.Create(context.Background(), services.CreateOrderInput{
		Customer: owner.ID.String(),
		Products: items,
	})
	require.NoError(t, err)
	return o
}

func item(p models.Product, qty int) services.LineItemInput {
	return services.LineItemInput{Product: p.ID.String(), Quantity: qty}
}
