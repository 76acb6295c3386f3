package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/app/models"
)

type orders struct {
	db *gorm.DB
}

func (r *orders) Insert(ctx context.Context, o *models.Order) error {
	defer observe("insert")()

	if o.ID.IsZero() {
		o.ID = models.NewID()
	}
	if o.Products == nil {
		o.Products = []models.LineItem{}
	}
	return translate(r.db.WithContext(ctx).Create(o).Error, "orders: insert")
}

func (r *orders) FindByID(ctx context.Context, id models.ID) (models.Order, error) {
	defer observe("select")()

	var o models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	return o, translate(err, "orders: find by id")
}

func (r *orders) FindAll(ctx context.Context) ([]models.Order, error) {
	defer observe("select")()

	out := make([]models.Order, 0)
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&out).Error; err != nil {
		return nil, translate(err, "orders: find all")
	}
	return out, nil
}

func (r *orders) Update(ctx context.Context, o *models.Order) error {
	defer observe("update")()
	return updateRow(ctx, r.db, o, "orders: update")
}

func (r *orders) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return deleteRow(ctx, r.db, &models.Order{}, id, "orders: delete")
}
