// Package controllers adapts HTTP requests to the service layer.
package controllers

import (
	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
)

// resolveCaller maps the token on the request to a stored user. It writes
// a 403 and returns false when the token names no user.
func resolveCaller(c *ctx.Context, users *services.UserService) (models.Caller, bool) {
	id, ok := c.Identity()
	if !ok {
		c.Forbidden()
		return models.Caller{}, false
	}
	caller, err := users.Caller(c.Context(), id.Username)
	if err != nil {
		c.Fail(err)
		return models.Caller{}, false
	}
	return caller, true
}
