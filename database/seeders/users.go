package seeders

import (
	"context"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/config"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers creates the administrator account named by SEED_ADMIN_USERNAME
// unless it already exists.
func SeedUsers(ctx context.Context, d Deps) error {
	_, err := d.Users.Create(ctx, services.CreateUserInput{
		Username: config.Get("SEED_ADMIN_USERNAME", "admin"),
		Password: config.Get("SEED_ADMIN_PASSWORD", "admin"),
		Role:     string(models.RoleAdmin),
	})
	if apperr.Is(err, apperr.Conflict) {
		return nil
	}
	return err
}
