package kernel

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/app/repositories/memstore"
	"github.com/shashiranjanraj/shopdesk/app/repositories/mongostore"
	"github.com/shashiranjanraj/shopdesk/app/repositories/sqlstore"
	"github.com/shashiranjanraj/shopdesk/config"
	_ "github.com/shashiranjanraj/shopdesk/database/migrations"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
	"github.com/shashiranjanraj/shopdesk/pkg/broker"
	"github.com/shashiranjanraj/shopdesk/pkg/cache"
	"github.com/shashiranjanraj/shopdesk/pkg/database"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
	"github.com/shashiranjanraj/shopdesk/pkg/migration"
)

const cachePrefix = "shopdesk:"

// OpenStore connects the repository backend named by DB_DRIVER. SQL
// backends run pending migrations first when DB_AUTO_MIGRATE is set;
// migration progress goes to out.
func OpenStore(ctx context.Context, out io.Writer) (repositories.Store, error) {
	driver := config.DatabaseDriver()

	switch {
	case driver == "memory":
		return memstore.New(), nil

	case driver == "mongo":
		client, err := database.ConnectMongo(ctx, config.MongoURI())
		if err != nil {
			return nil, err
		}
		store := mongostore.New(client, config.MongoDatabase())
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil

	case config.IsSQLDriver(driver):
		db, err := database.OpenSQL(driver, config.DatabaseDSN())
		if err != nil {
			return nil, err
		}
		store := sqlstore.New(db)
		if config.AutoMigrate() {
			if _, err := migration.New(db, out).Run(); err != nil {
				_ = store.Close(ctx)
				return nil, err
			}
		}
		return store, nil

	default:
		return nil, errors.Errorf("kernel: unsupported DB_DRIVER %q", driver)
	}
}

// Boot builds a Kernel from configuration. Redis, RabbitMQ and the Mongo
// log sink are optional: when unreachable they are logged and skipped.
func Boot(ctx context.Context, out io.Writer) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, errors.Wrap(err, "kernel: load config")
	}

	var closers []func(context.Context) error

	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.DialMongoHandler(ctx, uri, config.MongoDatabase(), "logs", slog.LevelInfo)
		if err != nil {
			logger.Warn("kernel: mongo log sink disabled", "error", err)
		} else {
			logger.Attach(h)
			closers = append(closers, h.Close)
		}
	}

	store, err := OpenStore(ctx, out)
	if err != nil {
		return nil, err
	}
	closers = append(closers, store.Close)

	c, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword(), cachePrefix)
	if err != nil {
		logger.Warn("kernel: cache disabled", "error", err)
	}
	closers = append(closers, func(context.Context) error { return c.Close() })

	var pub broker.Publisher
	if url := config.AMQPURL(); url != "" {
		b, err := broker.Dial(url, config.AMQPExchange())
		if err != nil {
			logger.Warn("kernel: broker disabled", "error", err)
		} else {
			pub = b
			closers = append(closers, func(context.Context) error { return b.Close() })
		}
	}

	k, err := New(Options{
		Store:        store,
		Tokens:       auth.NewJWT(config.JWTSecret(), config.JWTTTL(), config.JWTIssuer()),
		Hasher:       auth.NewPasswordHasher(config.BcryptCost()),
		Cache:        c,
		CacheTTL:     config.CacheTTL(),
		Broker:       pub,
		EventWorkers: config.EventWorkers(),
		RateLimit:    config.RateLimit(),
	})
	if err != nil {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i](ctx)
		}
		return nil, err
	}

	for _, fn := range closers {
		k.OnShutdown(fn)
	}
	return k, nil
}
