package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/authz"
)

// Common errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already in use")
	// ErrInvalidCredentials is returned both for an unknown username and
	// for a wrong password, so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not allowed to modify this user")
)

// Service handles user business logic
type Service struct {
	repo   Repository
	tokens *auth.TokenManager
	rules  authz.Rules
}

// NewService creates a new user service with its dependencies injected
func NewService(repo Repository, tokens *auth.TokenManager, rules authz.Rules) *Service {
	return &Service{repo: repo, tokens: tokens, rules: rules}
}

// Register creates a new user account. Uniqueness of username and email is
// pre-checked for a friendly error; the database unique indexes remain the
// authoritative guard against concurrent registrations.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.repo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
}

// Validate authenticates a username/password pair and issues a session
// token carrying both the user's id and username.
func (s *Service) Validate(ctx context.Context, req *ValidateRequest) (*User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", err
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// List retrieves all users
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// RoleByUsername looks up the role of the given username
func (s *Service) RoleByUsername(ctx context.Context, username string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return u.Role, nil
}

// Update modifies an existing user. Each field is independently optional;
// the principal must pass the user-mutation check.
func (s *Service) Update(ctx context.Context, principal *auth.Principal, id int64, req *UpdateUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !s.rules.CanMutateUser(principal, id) {
		return nil, ErrForbidden
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil {
		existing.Username = *req.Username
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// Delete removes a user, subject to the user-mutation check
func (s *Service) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	if !s.rules.CanMutateUser(principal, id) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
