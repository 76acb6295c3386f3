package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
)

// Credentials is the body of the authenticate and register endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users  *UserService
	tokens *auth.JWT
}

func NewAuthService(users *UserService, tokens *auth.JWT) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Authenticate returns a token for a valid username/password pair.
func (s *AuthService) Authenticate(ctx context.Context, c Credentials) (string, error) {
	u, err := s.users.Authenticate(ctx, c.Username, c.Password)
	if err != nil {
		return "", err
	}
	return s.Issue(u)
}

// Register creates a CUSTOMER account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, c Credentials) (string, error) {
	u, err := s.users.Create(ctx, CreateUserInput{
		Username: c.Username,
		Password: c.Password,
		Role:     string(models.RoleCustomer),
	})
	if err != nil {
		return "", err
	}
	return s.Issue(u)
}

// Issue signs a token carrying the user's id, username and role.
func (s *AuthService) Issue(u models.User) (string, error) {
	token, err := s.tokens.Issue(u.ID.String(), u.Username, string(u.Role))
	if err != nil {
		return "", errors.Wrap(err, "auth: issue token")
	}
	return token, nil
}
