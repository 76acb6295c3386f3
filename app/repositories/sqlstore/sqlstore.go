// Package sqlstore implements the repositories on top of gorm, for any of
// the sqlite, postgres, mysql and sqlserver drivers.
package sqlstore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
)

// Store implements repositories.Store over a *gorm.DB.
type Store struct {
	db *gorm.DB
}

// New wraps db. The schema is expected to exist; see pkg/migration.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for migrations and seeders.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() repositories.UserRepository       { return &users{db: s.db} }
func (s *Store) Products() repositories.ProductRepository { return &products{db: s.db} }
func (s *Store) Orders() repositories.OrderRepository     { return &orders{db: s.db} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "sqlstore: ping")
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "sqlstore: close")
	}
	return sqlDB.Close()
}

func observe(op string) func() {
	start := time.Now()
	return func() { metrics.ObserveDBQuery("sql", op, start) }
}

// translate maps gorm errors onto the repository sentinels.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	}
	return errors.Wrap(err, "sqlstore: "+op)
}

// updateRow writes every column of row except created_at and reports
// ErrNotFound when no row has row's primary key.
func updateRow(ctx context.Context, db *gorm.DB, row any, op string) error {
	res := db.WithContext(ctx).Model(row).Select("*").Omit("created_at").Updates(row)
	if res.Error != nil {
		return translate(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func deleteRow(ctx context.Context, db *gorm.DB, model any, id models.ID, op string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return translate(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
