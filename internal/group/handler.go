package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dcastellm/taskboard/pkg/middleware"
	"github.com/dcastellm/taskboard/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /groups
// @Summary      Create a group
// @Description  Create a group with a fixed, non-empty member list
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.Envelope{data=Group}
// @Failure      400 {object} response.Envelope
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create group", err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		Message: "Group created successfully",
		Data:    g,
	})
}

// List handles GET /groups
// @Summary      List all groups
// @Description  List every group; any authenticated user sees all of them
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.Envelope{groups=[]Group}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListAll(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list groups", err)
		return
	}
	if groups == nil {
		groups = []*Group{}
	}

	response.JSON(w, http.StatusOK, response.Envelope{Groups: groups})
}
