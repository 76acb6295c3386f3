package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

type products struct {
	db *gorm.DB
}

func (r *products) Insert(ctx context.Context, p *models.Product) error {
	defer observe("insert")()

	if p.ID.IsZero() {
		p.ID = models.NewID()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error, "products: insert")
}

func (r *products) FindByID(ctx context.Context, id models.ID) (models.Product, error) {
	defer observe("select")()

	var p models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, translate(err, "products: find by id")
}

func (r *products) FindAll(ctx context.Context, q repositories.ProductQuery) ([]models.Product, error) {
	defer observe("select")()

	tx := r.db.WithContext(ctx).Order("created_at, id")
	if q.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Name)+"%")
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	out := make([]models.Product, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, translate(err, "products: find all")
	}
	return out, nil
}

func (r *products) Update(ctx context.Context, p *models.Product) error {
	defer observe("update")()
	return updateRow(ctx, r.db, p, "products: update")
}

func (r *products) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return deleteRow(ctx, r.db, &models.Product{}, id, "products: delete")
}
