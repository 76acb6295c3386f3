// Package kernel assembles shopdesk: repositories, services, event listeners
// and the HTTP router with its global middleware.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	appgql "github.com/shashiranjanraj/shopdesk/app/graphql"
	"github.com/shashiranjanraj/shopdesk/app/listeners"
	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/app/routes"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
	"github.com/shashiranjanraj/shopdesk/pkg/broker"
	"github.com/shashiranjanraj/shopdesk/pkg/cache"
	"github.com/shashiranjanraj/shopdesk/pkg/event"
	gql "github.com/shashiranjanraj/shopdesk/pkg/graphql"
	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
	"github.com/shashiranjanraj/shopdesk/pkg/middleware"
	"github.com/shashiranjanraj/shopdesk/pkg/reqid"
	"github.com/shashiranjanraj/shopdesk/pkg/router"
	"github.com/shashiranjanraj/shopdesk/pkg/sse"
	"github.com/shashiranjanraj/shopdesk/pkg/workerpool"
	"github.com/shashiranjanraj/shopdesk/pkg/ws"
)

// Options configures New. Store, Tokens and Hasher are required.
type Options struct {
	Store    repositories.Store
	Tokens   *auth.JWT
	Hasher   auth.PasswordHasher
	Cache    *cache.Store
	CacheTTL time.Duration
	Broker   broker.Publisher

	// EventWorkers sizes the pool running order listeners.
	EventWorkers int
	// RateLimit is requests per client per minute; zero disables it.
	RateLimit int
}

// Kernel owns the wired application.
type Kernel struct {
	Store    repositories.Store
	Tokens   *auth.JWT
	Users    *services.UserService
	Products *services.ProductService
	Orders   *services.OrderService
	Auth     *services.AuthService
	Hub      *ws.Hub
	Feed     *sse.Broker

	router  *router.Router
	pool    *workerpool.Pool
	stopHub context.CancelFunc
	hubDone chan struct{}
	closers []func(context.Context) error
}

// New wires services and routes over opts.Store and starts the websocket
// hub. Call Shutdown to stop it.
func New(opts Options) (*Kernel, error) {
	if opts.Store == nil || opts.Tokens == nil {
		return nil, errors.New("kernel: store and tokens are required")
	}

	products := repositories.NewCachedProducts(opts.Store.Products(), opts.Cache, opts.CacheTTL)

	k := &Kernel{
		Store:  opts.Store,
		Tokens: opts.Tokens,
		Hub:    ws.NewHub(),
		Feed:   sse.NewBroker(32),
		pool:   workerpool.New(opts.EventWorkers, opts.EventWorkers*64),
	}

	events := event.New(k.pool)
	listeners.Register(events, listeners.Options{Hub: k.Hub, Feed: k.Feed, Broker: opts.Broker})

	k.Users = services.NewUserService(opts.Store.Users(), opts.Hasher)
	k.Products = services.NewProductService(products)
	k.Orders = services.NewOrderService(k.Users, k.Products, opts.Store.Orders(), listeners.NewNotifier(events))
	k.Auth = services.NewAuthService(k.Users, opts.Tokens)

	schema, err := appgql.NewSchema(appgql.Resolvers{
		Orders:   k.Orders,
		Products: k.Products,
		Caller:   k.caller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "kernel: graphql schema")
	}

	r := router.New()

	// outermost first
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(opts.RateLimit, time.Minute))

	r.Handle("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Services{
		Tokens:   opts.Tokens,
		Auth:     k.Auth,
		Users:    k.Users,
		Products: k.Products,
		Orders:   k.Orders,
		Ping:     opts.Store.Ping,
		Hub:      k.Hub,
		Feed:     k.Feed,
		GraphQL:  gql.Handler(schema),
	})
	k.router = r

	hubCtx, cancel := context.WithCancel(context.Background())
	k.stopHub = cancel
	k.hubDone = make(chan struct{})
	go func() {
		defer close(k.hubDone)
		k.Hub.Run(hubCtx)
	}()

	return k, nil
}

func (k *Kernel) caller(ctx context.Context) (models.Caller, error) {
	id, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		return models.Caller{}, apperr.New(apperr.Forbidden, "unauthorized access")
	}
	return k.Users.Caller(ctx, id.Username)
}

// Handler returns the root HTTP handler.
func (k *Kernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered route.
func (k *Kernel) Routes() []router.RouteInfo { return k.router.Routes() }

// OnShutdown registers fn to run after the kernel stops, in reverse order.
func (k *Kernel) OnShutdown(fn func(context.Context) error) {
	k.closers = append(k.closers, fn)
}

// Shutdown drains pending order events, stops the hub and runs the
// registered closers. The first error is returned; all closers run.
func (k *Kernel) Shutdown(ctx context.Context) error {
	k.pool.Shutdown()
	k.stopHub()

	select {
	case <-k.hubDone:
	case <-ctx.Done():
	}

	var first error
	for i := len(k.closers) - 1; i >= 0; i-- {
		if err := k.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	k.closers = nil
	return first
}
