package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellm/taskboard/pkg/middleware"
	"github.com/dcastellm/taskboard/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /register
// @Summary      Register a new user
// @Description  Create a user account with username, password, email and role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Router       /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrDuplicateUser):
			response.Conflict(w, "Username or email already in use")
		default:
			response.InternalError(w, "Failed to register user", err)
		}
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		IntMessage: "User registered successfully",
		Data: map[string]string{
			"username": u.Username,
			"email":    u.Email,
		},
	})
}

// Validate handles POST /validate
// @Summary      Authenticate a user
// @Description  Verify credentials and return a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body ValidateRequest true "Credentials"
// @Success      200 {object} response.Envelope{data=AuthResponse}
// @Failure      400 {object} response.Envelope
// @Failure      401 {object} response.Envelope
// @Router       /validate [post]
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, token, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid credentials")
		default:
			response.InternalError(w, "Failed to validate user", err)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		IntMessage: "Operation successful",
		Data: &AuthResponse{
			Message: "Authentication successful",
			User:    u.ToResponse(),
			Token:   token,
		},
	})
}

// List handles GET /users
// @Summary      List all users
// @Description  Get all users; password hashes are never included
// @Tags         users
// @Produce      json
// @Success      200 {object} response.Envelope{users=[]UserResponse}
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list users", err)
		return
	}

	userResponses := make([]*UserResponse, len(users))
	for i, u := range users {
		userResponses[i] = u.ToResponse()
	}

	response.JSON(w, http.StatusOK, response.Envelope{Users: userResponses})
}

// Role handles GET /user/role
// @Summary      Get own role
// @Description  Look up the authenticated user's role by username claim
// @Tags         users
// @Produce      json
// @Success      200 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /user/role [get]
func (h *Handler) Role(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	role, err := h.service.RoleByUsername(r.Context(), principal.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to get role", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{Data: map[string]string{"role": role}})
}

// Update handles PUT /users/{id}
// @Summary      Update a user
// @Description  Update username, email, role or password of a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "User update request"
// @Success      200 {object} response.Envelope{data=UserResponse}
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.Update(r.Context(), principal, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Not allowed to modify this user")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrDuplicateUser):
			response.Conflict(w, "Username or email already in use")
		default:
			response.InternalError(w, "Failed to update user", err)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Message: "User updated successfully",
		Data:    u.ToResponse(),
	})
}

// Delete handles DELETE /users/{id}
// @Summary      Delete a user
// @Description  Delete a user by their ID
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Not allowed to modify this user")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w, "Failed to delete user", err)
		}
		return
	}

	response.Message(w, http.StatusOK, "User deleted successfully")
}
