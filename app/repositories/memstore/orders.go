package memstore

import (
	"context"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

// Orders is the in-memory OrderRepository.
type Orders struct {
	*table[models.Order]
}

func cloneOrder(o models.Order) models.Order {
	o.Products = append([]models.LineItem(nil), o.Products...)
	return o
}

func (r *Orders) Insert(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if _, ok := r.rows[o.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.rows[o.ID] = cloneOrder(*o)
	r.order = append(r.order, o.ID)
	return nil
}

func (r *Orders) FindByID(_ context.Context, id models.ID) (models.Order, error) {
	o, ok := r.get(id)
	if !ok {
		return models.Order{}, repositories.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *Orders) FindAll(context.Context) ([]models.Order, error) {
	out := r.scan(func(models.Order) bool { return true })
	for i := range out {
		out[i] = cloneOrder(out[i])
	}
	return out, nil
}

func (r *Orders) Update(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.rows[o.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	o.CreatedAt = prev.CreatedAt
	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	r.rows[o.ID] = cloneOrder(*o)
	return nil
}

func (r *Orders) Delete(_ context.Context, id models.ID) error {
	if !r.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}
