package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
	"github.com/shashiranjanraj/shopdesk/pkg/auth"
	"github.com/shashiranjanraj/shopdesk/pkg/validate"
)

// CreateUserInput is the payload accepted by UserService.Create.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=64"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"nullable,in=CUSTOMER,ADMIN"`
}

// UpdateUserInput changes a password, a role, or both. Empty means unchanged.
type UpdateUserInput struct {
	Password string `json:"password" validate:"nullable,min=4"`
	Role     string `json:"role"     validate:"nullable,in=CUSTOMER,ADMIN"`
}

// UserFilter narrows ReadAll. Zero values match everything.
type UserFilter struct {
	Username string
	Role     string
}

// UserService manages accounts.
type UserService struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
}

func NewUserService(users repositories.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Create validates the input, hashes the password and stores a new user.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, apperr.Invalid(errs)
	}

	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleCustomer
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, errors.Wrap(err, "users: hash password")
	}

	u := models.User{Username: in.Username, Password: hash, Role: role}
	if err := s.users.Insert(ctx, &u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.User{}, apperr.Newf(apperr.Conflict, "username %q is already taken", in.Username)
		}
		return models.User{}, errors.Wrap(err, "users: insert")
	}
	return u, nil
}

// Read looks up a user by the hex form of its id.
func (s *UserService) Read(ctx context.Context, id string) (models.User, error) {
	uid, err := models.ParseID(id)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.InvalidID, err, "invalid user id")
	}
	return s.ReadByID(ctx, uid)
}

func (s *UserService) ReadByID(ctx context.Context, id models.ID) (models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, notFound(err, "user", "users: find")
	}
	return u, nil
}

// ReadOne looks up a user by username.
func (s *UserService) ReadOne(ctx context.Context, username string) (models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.User{}, notFound(err, "user", "users: find by username")
	}
	return u, nil
}

func (s *UserService) ReadAll(ctx context.Context, f UserFilter) ([]models.User, error) {
	users, err := s.users.FindAll(ctx, repositories.UserQuery{
		Username: f.Username,
		Role:     models.Role(f.Role),
	})
	if err != nil {
		return nil, errors.Wrap(err, "users: find all")
	}
	return users, nil
}

// Update changes the password and/or role of a user.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (models.User, error) {
	if in.Password == "" && in.Role == "" {
		return models.User{}, apperr.New(apperr.InvalidPayload, "You must provide at least one user attribute!")
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, apperr.Invalid(errs)
	}

	u, err := s.Read(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return models.User{}, errors.Wrap(err, "users: hash password")
		}
		u.Password = hash
	}
	if in.Role != "" {
		u.Role = models.Role(in.Role)
	}

	if err := s.users.Update(ctx, &u); err != nil {
		return models.User{}, notFound(err, "user", "users: update")
	}
	return u, nil
}

// Delete removes a user and returns it as it was.
func (s *UserService) Delete(ctx context.Context, id string) (models.User, error) {
	u, err := s.Read(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return models.User{}, notFound(err, "user", "users: delete")
	}
	return u, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, apperr.New(apperr.InvalidCredentials, "Wrong username or password!")
		}
		return models.User{}, errors.Wrap(err, "users: find by username")
	}
	if !s.hasher.Check(u.Password, password) {
		return models.User{}, apperr.New(apperr.InvalidCredentials, "Wrong username or password!")
	}
	return u, nil
}

// Caller resolves the username carried by a token to a stored user. A token
// whose user no longer exists is treated as unauthorised.
func (s *UserService) Caller(ctx context.Context, username string) (models.Caller, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Caller{}, apperr.New(apperr.Forbidden, "unknown caller")
		}
		return models.Caller{}, errors.Wrap(err, "users: resolve caller")
	}
	return models.CallerOf(u), nil
}

// notFound turns repositories.ErrNotFound into apperr.NotFound and wraps
// anything else as an internal failure.
func notFound(err error, what, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, err, what+" not found")
	}
	return errors.Wrap(err, op)
}
