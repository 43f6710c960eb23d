package user

import (
	"fmt"

	"github.com/dcastellm/taskboard/internal/auth"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin manager user"`
}

// Validate checks every required field is present and the role is one of
// the known values.
func (r *RegisterRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Email == "" || r.Role == "" {
		return fmt.Errorf("%w: username, password, email and role are required", ErrValidation)
	}
	switch r.Role {
	case auth.RoleAdmin, auth.RoleManager, auth.RoleUser:
	default:
		return fmt.Errorf("%w: role must be one of admin, manager, user", ErrValidation)
	}
	return nil
}

// ValidateRequest represents the request body for authentication
type ValidateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *ValidateRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	return nil
}

// UpdateUserRequest represents the request body for updating a user.
// Every field is independently optional.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Role != nil {
		switch *r.Role {
		case auth.RoleAdmin, auth.RoleManager, auth.RoleUser:
		default:
			return fmt.Errorf("%w: role must be one of admin, manager, user", ErrValidation)
		}
	}
	return nil
}

// UserResponse is the outbound projection of a user. It never carries the
// password hash.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is returned by a successful validation
type AuthResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
	Token   string        `json:"token"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if u.LastLogin != nil {
		resp.LastLogin = u.LastLogin.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
