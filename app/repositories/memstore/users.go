package memstore

import (
	"context"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

// Users is the in-memory UserRepository.
type Users struct {
	*table[models.User]
}

func (r *Users) Insert(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usernameTaken(u.Username, models.ID{}) {
		return repositories.ErrDuplicate
	}
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if _, ok := r.rows[u.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.rows[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *Users) FindByID(_ context.Context, id models.ID) (models.User, error) {
	u, ok := r.get(id)
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (r *Users) FindByUsername(_ context.Context, username string) (models.User, error) {
	found := r.scan(func(u models.User) bool { return u.Username == username })
	if len(found) == 0 {
		return models.User{}, repositories.ErrNotFound
	}
	return found[0], nil
}

func (r *Users) FindAll(_ context.Context, q repositories.UserQuery) ([]models.User, error) {
	return r.scan(q.Matches), nil
}

func (r *Users) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.rows[u.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.usernameTaken(u.Username, u.ID) {
		return repositories.ErrDuplicate
	}
	u.CreatedAt = prev.CreatedAt
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	r.rows[u.ID] = *u
	return nil
}

func (r *Users) Delete(_ context.Context, id models.ID) error {
	if !r.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}

// usernameTaken must be called with the lock held.
func (r *Users) usernameTaken(username string, except models.ID) bool {
	for id, u := range r.rows {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}
