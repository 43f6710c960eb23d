package grouptask

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellm/taskboard/pkg/middleware"
	"github.com/dcastellm/taskboard/pkg/response"
)

// Handler handles HTTP requests for the group task workflow
type Handler struct {
	service *Service
}

// NewHandler creates a new group task handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group task endpoints, mounted under
// /groups/{groupID}/groupTasks
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{taskID}/status", h.UpdateStatus)

	return r
}

// Create handles POST /groups/{groupID}/groupTasks
// @Summary      Create a group task
// @Description  Create a task in a group; only the group's creator may
// @Tags         group-tasks
// @Accept       json
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        request body CreateGroupTaskRequest true "Group task creation request"
// @Success      201 {object} response.Envelope
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /groups/{groupID}/groupTasks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req CreateGroupTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Create(r.Context(), principal, groupID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, "Group not found")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Only the group creator can create tasks")
		case errors.Is(err, ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create group task", err)
		}
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		Message: "Group task created successfully",
		Data:    map[string]int64{"taskId": t.ID},
	})
}

// List handles GET /groups/{groupID}/groupTasks
// @Summary      List a group's tasks
// @Description  List all tasks in a group; a group without tasks yields an empty list
// @Tags         group-tasks
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Success      200 {object} response.Envelope{tasks=[]GroupTask}
// @Failure      404 {object} response.Envelope
// @Router       /groups/{groupID}/groupTasks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	tasks, err := h.service.List(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, "Group not found")
			return
		}
		response.InternalError(w, "Failed to list group tasks", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{Tasks: tasks})
}

// UpdateStatus handles PUT /groups/{groupID}/groupTasks/{taskID}/status
// @Summary      Move a group task
// @Description  Update a task's status; only the assigned user may
// @Tags         group-tasks
// @Accept       json
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Param        taskID path int true "Task ID"
// @Param        request body UpdateStatusRequest true "Status update request"
// @Success      200 {object} response.Envelope{data=GroupTask}
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Failure      409 {object} response.Envelope
// @Router       /groups/{groupID}/groupTasks/{taskID}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Forbidden(w, "Token not provided")
		return
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.UpdateStatus(r.Context(), principal, taskID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrTaskNotFound):
			response.NotFound(w, "Group task not found")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Only the assigned user can update the status")
		case errors.Is(err, ErrConflict):
			response.Conflict(w, "Task changed concurrently, retry")
		default:
			response.InternalError(w, "Failed to update group task status", err)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Message: "Status updated successfully",
		Data:    t,
	})
}
