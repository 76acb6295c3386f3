// Package repositories defines the persistence contracts used by the service
// layer. Backends live in the memstore, sqlstore and mongostore packages.
package repositories

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// UserQuery narrows FindAll. Zero values match everything.
type UserQuery struct {
	Username string
	Role     models.Role
}

// Matches reports whether u satisfies q.
func (q UserQuery) Matches(u models.User) bool {
	if q.Username != "" && u.Username != q.Username {
		return false
	}
	if q.Role != "" && u.Role != q.Role {
		return false
	}
	return true
}

// ProductQuery narrows FindAll. Name is a case-insensitive substring.
type ProductQuery struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether p satisfies q.
func (q ProductQuery) Matches(p models.Product) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

// UserRepository persists users. Lookups return ErrNotFound when nothing
// matches; Insert and Update return ErrDuplicate on a username clash.
type UserRepository interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id models.ID) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindAll(ctx context.Context, q UserQuery) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id models.ID) error
}

// ProductRepository persists products.
type ProductRepository interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id models.ID) (models.Product, error)
	FindAll(ctx context.Context, q ProductQuery) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id models.ID) error
}

// OrderRepository persists orders. FindAll returns orders in insertion order.
type OrderRepository interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id models.ID) (models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id models.ID) error
}

// Store bundles the repositories of one backend.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
