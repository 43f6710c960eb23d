package grouptask

import (
	"context"
	"errors"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/authz"
	"github.com/dcastellm/taskboard/internal/group"
)

// Common errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrGroupNotFound = errors.New("group not found")
	ErrTaskNotFound  = errors.New("group task not found")
	ErrForbidden     = errors.New("not allowed to perform this action")
	// ErrConflict is returned when the conditional status write loses a
	// race, i.e. the task was reassigned between the read and the write.
	ErrConflict = errors.New("task changed concurrently")
)

// GroupStore is the slice of the group registry the workflow needs
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*group.Group, error)
}

// Service handles the group task workflow
type Service struct {
	repo   Repository
	groups GroupStore
}

// NewService creates a new group task service
func NewService(repo Repository, groups GroupStore) *Service {
	return &Service{repo: repo, groups: groups}
}

// Create creates a task inside a group. Only the group's creator may.
func (s *Service) Create(ctx context.Context, principal *auth.Principal, groupID int64, req *CreateGroupTaskRequest) (*GroupTask, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	if !authz.CanCreateGroupTask(principal, g.CreatedBy) {
		return nil, ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &GroupTask{
		GroupID:     groupID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   principal.UserID,
	})
}

// List retrieves a group's tasks. An existing group with no tasks yields an
// empty list, not an error; only an absent group is a not-found.
func (s *Service) List(ctx context.Context, groupID int64) ([]*GroupTask, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	tasks, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*GroupTask{}
	}
	return tasks, nil
}

// UpdateStatus moves a task on the board. Only the assigned user may, and
// the write is conditional on the assignment still holding.
func (s *Service) UpdateStatus(ctx context.Context, principal *auth.Principal, taskID int64, req *UpdateStatusRequest) (*GroupTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	if !authz.CanUpdateGroupTaskStatus(principal, t.AssignedTo) {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateStatus(ctx, taskID, req.Status, principal.UserID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrConflict
	}
	return updated, nil
}
