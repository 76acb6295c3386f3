// Package routes declares the HTTP surface of shopdesk.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/shopdesk/app/controllers"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
	"github.com/shashiranjanraj/shopdesk/pkg/middleware"
	"github.com/shashiranjanraj/shopdesk/pkg/rbac"
	"github.com/shashiranjanraj/shopdesk/pkg/router"
	"github.com/shashiranjanraj/shopdesk/pkg/sse"
	"github.com/shashiranjanraj/shopdesk/pkg/ws"
)

const sseHeartbeat = 15 * time.Second

// Services is everything the routes hand requests to. Hub, Feed and
// GraphQL are optional; their routes are skipped when nil.
type Services struct {
	Tokens   middleware.TokenVerifier
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Orders   *services.OrderService
	Ping     func(ctx context.Context) error
	Hub      *ws.Hub
	Feed     *sse.Broker
	GraphQL  http.Handler
}

func RegisterAPI(r *router.Router, s Services) {
	authController := controllers.NewAuthController(s.Auth)
	userController := controllers.NewUserController(s.Users)
	productController := controllers.NewProductController(s.Products)
	orderController := controllers.NewOrderController(s.Orders, s.Users)
	healthController := controllers.NewHealthController(s.Ping)

	authenticated := middleware.Auth(s.Tokens)
	admin := rbac.HasRole(storedRole(s.Users), rbac.RoleAdmin)

	r.Get("/healthz", "health", ctx.Wrap(healthController.Check))

	api := r.Group("/api")
	api.Post("/authenticate", "auth.authenticate", ctx.Wrap(authController.Authenticate))
	api.Post("/register", "auth.register", ctx.Wrap(authController.Register))

	api.Get("/products", "products.index", ctx.Wrap(productController.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))

	protected := api.Group("", authenticated)

	protected.Get("/users", "users.index", ctx.Wrap(userController.Index), admin)
	protected.Post("/users", "users.store", ctx.Wrap(userController.Store), admin)
	protected.Get("/users/{id}", "users.show", ctx.Wrap(userController.Show))
	protected.Put("/users/{id}", "users.update", ctx.Wrap(userController.Update))
	protected.Delete("/users/{id}", "users.destroy", ctx.Wrap(userController.Destroy))

	protected.Post("/products", "products.store", ctx.Wrap(productController.Store), admin)
	protected.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update), admin)
	protected.Delete("/products/{id}", "products.destroy", ctx.Wrap(productController.Destroy), admin)

	protected.Get("/orders", "orders.index", ctx.Wrap(orderController.Index))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(orderController.Show))
	protected.Post("/orders", "orders.store", ctx.Wrap(orderController.Store))
	protected.Put("/orders/{id}", "orders.update", ctx.Wrap(orderController.Update))
	protected.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(orderController.Destroy))

	if s.GraphQL != nil {
		r.Post("/graphql", "graphql", s.GraphQL.ServeHTTP, authenticated)
	}
	if s.Hub != nil {
		r.Get("/ws/orders", "ws.orders", ws.Handler(s.Hub).ServeHTTP, authenticated, admin)
	}
	if s.Feed != nil {
		r.Get("/sse/orders", "sse.orders", sse.Handler(s.Feed, sseHeartbeat).ServeHTTP, authenticated, admin)
	}
}

// storedRole reads the role from the user record, so demoting an admin takes
// effect before their token expires.
func storedRole(users *services.UserService) rbac.RoleLookup {
	if users == nil {
		return nil
	}
	return func(ctx context.Context, username string) (string, error) {
		caller, err := users.Caller(ctx, username)
		if err != nil {
			return "", err
		}
		return string(caller.Role), nil
	}
}
