package task

import (
	"context"
	"errors"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/authz"
)

// Common errors
var (
	ErrValidation   = errors.New("validation failed")
	ErrTaskNotFound = errors.New("task not found")
	ErrForbidden    = errors.New("not allowed to modify this task")
)

// Service handles personal task business logic
type Service struct {
	repo  Repository
	rules authz.Rules
}

// NewService creates a new task service
func NewService(repo Repository, rules authz.Rules) *Service {
	return &Service{repo: repo, rules: rules}
}

// Create creates a new task owned by the principal
func (s *Service) Create(ctx context.Context, principal *auth.Principal, req *CreateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &Task{
		Owner:           principal.Username,
		Category:        req.Category,
		Name:            req.Name,
		Description:     req.Description,
		Status:          req.Status,
		TimeUntilFinish: req.TimeUntilFinish,
		RemindMe:        req.RemindMe,
	})
}

// ListForOwner retrieves the principal's own tasks
func (s *Service) ListForOwner(ctx context.Context, owner string) ([]*Task, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// ListAll retrieves every task in the store. Administrative surface.
func (s *Service) ListAll(ctx context.Context) ([]*Task, error) {
	return s.repo.ListAll(ctx)
}

// Update modifies a task, enforcing owner-or-admin when ownership
// enforcement is on
func (s *Service) Update(ctx context.Context, principal *auth.Principal, id int64, req *UpdateTaskRequest) (*Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}
	if !s.rules.CanMutatePersonalTask(principal, existing.Owner) {
		return nil, ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTaskNotFound
	}
	return updated, nil
}

// Delete removes a task, enforcing owner-or-admin when ownership
// enforcement is on
func (s *Service) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTaskNotFound
	}
	if !s.rules.CanMutatePersonalTask(principal, existing.Owner) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
