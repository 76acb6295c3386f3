package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
)

const notAuthorized = "You are not authorized to perform this action"

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Index handles GET /api/users?username|role. Admin only.
func (u *UserController) Index(c *ctx.Context) {
	username, role := c.Query("username"), c.Query("role")
	if username != "" && role != "" {
		c.Error(http.StatusBadRequest, "You must query the database based on either a username or user role.")
		return
	}
	users, err := u.users.ReadAll(c.Context(), services.UserFilter{Username: username, Role: role})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(users)
}

// Show handles GET /api/users/{id}. Admins see anyone, others only themselves.
func (u *UserController) Show(c *ctx.Context) {
	_, user, ok := u.manageable(c)
	if !ok {
		return
	}
	c.Success(user)
}

// Store handles POST /api/users. Admin only.
func (u *UserController) Store(c *ctx.Context) {
	var in services.CreateUserInput
	if !c.DecodeJSON(&in) {
		return
	}
	user, err := u.users.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(user)
}

// Update handles PUT /api/users/{id}. Only an admin may grant ADMIN.
func (u *UserController) Update(c *ctx.Context) {
	var in services.UpdateUserInput
	if !c.DecodeJSON(&in) {
		return
	}
	if in.Password == "" && in.Role == "" {
		c.Error(http.StatusBadRequest, "You must provide at least one user attribute!")
		return
	}

	caller, _, ok := u.manageable(c)
	if !ok {
		return
	}
	if !caller.IsAdmin() && models.Role(in.Role) == models.RoleAdmin {
		c.Forbidden(notAuthorized)
		return
	}

	user, err := u.users.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(user)
}

// Destroy handles DELETE /api/users/{id}.
func (u *UserController) Destroy(c *ctx.Context) {
	if _, _, ok := u.manageable(c); !ok {
		return
	}

	user, err := u.users.Delete(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(user)
}

// manageable resolves the caller from the stored user record and loads the
// account named by the path, which the caller must be allowed to manage.
// On failure the response has been written.
func (u *UserController) manageable(c *ctx.Context) (models.Caller, models.User, bool) {
	caller, ok := resolveCaller(c, u.users)
	if !ok {
		return models.Caller{}, models.User{}, false
	}
	target, err := u.users.Read(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return models.Caller{}, models.User{}, false
	}
	if !caller.CanManage(target.ID) {
		c.Forbidden(notAuthorized)
		return models.Caller{}, models.User{}, false
	}
	return caller, target, true
}
