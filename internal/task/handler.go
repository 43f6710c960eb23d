package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellm/taskboard/pkg/middleware"
	"github.com/dcastellm/taskboard/pkg/response"
)

// Handler handles HTTP requests for personal task operations
type Handler struct {
	service *Service
}

// NewHandler creates a new task handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /tasks
// @Summary      Create a personal task
// @Description  Create a task owned by the authenticated user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body CreateTaskRequest true "Task creation request"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Router       /tasks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create task", err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		Message: "Task created successfully",
		Data:    map[string]int64{"taskId": t.ID},
	})
}

// ListMine handles GET /tasks
// @Summary      List own tasks
// @Description  List the authenticated user's personal tasks
// @Tags         tasks
// @Produce      json
// @Success      200 {object} response.Envelope{tasks=[]Task}
// @Router       /tasks [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	tasks, err := h.service.ListForOwner(r.Context(), principal.Username)
	if err != nil {
		response.InternalError(w, "Failed to list tasks", err)
		return
	}
	if tasks == nil {
		tasks = []*Task{}
	}

	response.JSON(w, http.StatusOK, response.Envelope{Tasks: tasks})
}

// ListAll handles GET /all-tasks
// @Summary      List every task
// @Description  List all personal tasks regardless of owner
// @Tags         tasks
// @Produce      json
// @Success      200 {object} response.Envelope{tasks=[]Task}
// @Router       /all-tasks [get]
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListAll(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list all tasks", err)
		return
	}
	if tasks == nil {
		tasks = []*Task{}
	}

	response.JSON(w, http.StatusOK, response.Envelope{Tasks: tasks})
}

// Update handles PUT /tasks/{id}
// @Summary      Update a personal task
// @Description  Partially update a task; only the owner or an admin may
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body UpdateTaskRequest true "Task update request"
// @Success      200 {object} response.Envelope{data=Task}
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /tasks/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Update(r.Context(), principal, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			response.NotFound(w, "Task not found")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Not allowed to modify this task")
		default:
			response.InternalError(w, "Failed to update task", err)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Message: "Task updated successfully",
		Data:    t,
	})
}

// Delete handles DELETE /tasks
// @Summary      Delete a personal task
// @Description  Delete a task; the id travels in the request body
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body DeleteTaskRequest true "Task deletion request"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /tasks [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	var req DeleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		response.BadRequest(w, "Task ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), principal, req.ID); err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			response.NotFound(w, "Task not found")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Not allowed to modify this task")
		default:
			response.InternalError(w, "Failed to delete task", err)
		}
		return
	}

	response.Message(w, http.StatusOK, "Task deleted successfully")
}
