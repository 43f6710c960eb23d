package group

import (
	"context"
	"errors"

	"github.com/dcastellm/taskboard/internal/auth"
)

// Common errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrGroupNotFound = errors.New("group not found")
)

// Service handles group business logic
type Service struct {
	repo Repository
}

// NewService creates a new group service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group owned by the principal. Membership is fixed
// here; there is no add or remove member operation.
func (s *Service) Create(ctx context.Context, principal *auth.Principal, req *CreateGroupRequest) (*Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &Group{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   dedupe(req.MemberIDs),
		CreatedBy:   principal.UserID,
	})
}

// ListAll retrieves every group. Callers distinguish "mine" from
// "member of" by comparing created_by_user_id against their own id.
func (s *Service) ListAll(ctx context.Context) ([]*Group, error) {
	return s.repo.ListAll(ctx)
}

// GetByID retrieves a single group
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// dedupe keeps the first occurrence of each id; member ids form a set.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
