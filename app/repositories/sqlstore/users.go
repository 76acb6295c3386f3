package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

type users struct {
	db *gorm.DB
}

func (r *users) Insert(ctx context.Context, u *models.User) error {
	defer observe("insert")()

	taken, err := r.usernameTaken(ctx, u.Username, models.ID{})
	if err != nil {
		return err
	}
	if taken {
		return repositories.ErrDuplicate
	}
	if u.ID.IsZero() {
		u.ID = models.NewID()
	}
	return translate(r.db.WithContext(ctx).Create(u).Error, "users: insert")
}

func (r *users) FindByID(ctx context.Context, id models.ID) (models.User, error) {
	defer observe("select")()

	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, translate(err, "users: find by id")
}

func (r *users) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer observe("select")()

	var u models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return u, translate(err, "users: find by username")
}

func (r *users) FindAll(ctx context.Context, q repositories.UserQuery) ([]models.User, error) {
	defer observe("select")()

	tx := r.db.WithContext(ctx).Order("created_at, id")
	if q.Username != "" {
		tx = tx.Where("username = ?", q.Username)
	}
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}

	out := make([]models.User, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, translate(err, "users: find all")
	}
	return out, nil
}

func (r *users) Update(ctx context.Context, u *models.User) error {
	defer observe("update")()

	taken, err := r.usernameTaken(ctx, u.Username, u.ID)
	if err != nil {
		return err
	}
	if taken {
		return repositories.ErrDuplicate
	}
	return updateRow(ctx, r.db, u, "users: update")
}

func (r *users) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return deleteRow(ctx, r.db, &models.User{}, id, "users: delete")
}

func (r *users) usernameTaken(ctx context.Context, username string, except models.ID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, except).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "users: check username")
	}
	return n > 0, nil
}
