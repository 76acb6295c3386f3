package controllers

import (
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Authenticate handles POST /api/authenticate.
func (a *AuthController) Authenticate(c *ctx.Context) {
	var body services.Credentials
	if !c.DecodeJSON(&body) {
		return
	}
	token, err := a.service.Authenticate(c.Context(), body)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(tokenResponse{Token: token})
}

// Register handles POST /api/register.
func (a *AuthController) Register(c *ctx.Context) {
	var body services.Credentials
	if !c.DecodeJSON(&body) {
		return
	}
	token, err := a.service.Register(c.Context(), body)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(tokenResponse{Token: token})
}
