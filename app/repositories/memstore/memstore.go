// Package memstore is an in-process backend used by tests and by
// DB_DRIVER=memory. Records are copied on the way in and out so callers
// never share memory with the store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

// Store implements repositories.Store in memory.
type Store struct {
	users    *Users
	products *Products
	orders   *Orders
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    &Users{table: newTable[models.User]()},
		products: &Products{table: newTable[models.Product]()},
		orders:   &Orders{table: newTable[models.Order]()},
	}
}

func (s *Store) Users() repositories.UserRepository       { return s.users }
func (s *Store) Products() repositories.ProductRepository { return s.products }
func (s *Store) Orders() repositories.OrderRepository     { return s.orders }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

// table keeps rows by id plus their insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[models.ID]T
	order []models.ID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[models.ID]T)}
}

func (t *table[T]) get(id models.ID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// scan returns the rows matching keep in insertion order. Never nil.
func (t *table[T]) scan(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if row := t.rows[id]; keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) remove(id models.ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func stamp(id *models.ID, created, updated *time.Time) {
	now := time.Now().UTC()
	if id.IsZero() {
		*id = models.NewID()
	}
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
