package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
	"github.com/jortega-dev/job-board-api/internal/utils"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, name *string, email, passwordHash, role string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthService issues tokens and resolves token payloads back into live
// caller identities.
type AuthService struct {
	users      UserStore
	jwtSecret  string
	accessTTL  int
	bcryptCost int
}

func NewAuthService(users UserStore, jwtSecret string, accessTTLMin, bcryptCost int) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, accessTTL: accessTTLMin, bcryptCost: bcryptCost}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     *string
	Email    string
	Password string
}

// Register stores a new STUDENT account with a salted password hash and
// returns its public view. A taken email surfaces as ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.PublicUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return model.PublicUser{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.PublicUser{}, err
	}
	u, err := s.users.Create(ctx, in.Name, email, hash, model.RoleStudent)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.PublicUser{}, fmt.Errorf("%w: email %q is already registered", ErrConflict, email)
		}
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login verifies credentials and issues a signed access token embedding
// the user id, email, role and name. Unknown email and wrong password
// fail with the identical ErrUnauthorized so neither is leaked.
func (s *AuthService) Login(ctx context.Context, email, password string) (utils.AccessToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.AccessToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return utils.AccessToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	name := ""
	if u.Name != nil {
		name = *u.Name
	}
	return utils.NewAccessToken(s.jwtSecret, utils.TokenPayload{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Name:   name,
	}, s.accessTTL)
}

// Identify re-validates a parsed token payload against the live user
// row: the referenced user must still exist and its current role must
// match the role embedded at issuance. This invalidates stale tokens
// after a role change without a revocation store.
func (s *AuthService) Identify(ctx context.Context, p utils.TokenPayload) (authz.Identity, error) {
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return authz.Identity{}, fmt.Errorf("%w: user associated with token not found", ErrUnauthorized)
		}
		return authz.Identity{}, err
	}
	if u.Role != p.Role {
		return authz.Identity{}, fmt.Errorf("%w: user role mismatch", ErrUnauthorized)
	}
	return authz.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      p.Name,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}, nil
}

// Profile returns a user's public view, or ErrNotFound when the user no
// longer exists.
func (s *AuthService) Profile(ctx context.Context, userID uint64) (model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}
