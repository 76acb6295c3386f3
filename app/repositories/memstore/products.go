package memstore

import (
	"context"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

// Products is the in-memory ProductRepository.
type Products struct {
	*table[models.Product]
}

func (r *Products) Insert(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if _, ok := r.rows[p.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.rows[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *Products) FindByID(_ context.Context, id models.ID) (models.Product, error) {
	p, ok := r.get(id)
	if !ok {
		return models.Product{}, repositories.ErrNotFound
	}
	return p, nil
}

func (r *Products) FindAll(_ context.Context, q repositories.ProductQuery) ([]models.Product, error) {
	return r.scan(q.Matches), nil
}

func (r *Products) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.rows[p.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.CreatedAt = prev.CreatedAt
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.rows[p.ID] = *p
	return nil
}

func (r *Products) Delete(_ context.Context, id models.ID) error {
	if !r.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}
