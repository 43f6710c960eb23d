package grouptask

import "fmt"

// CreateGroupTaskRequest represents the request to create a group task
type CreateGroupTaskRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	AssignedTo  int64  `json:"assigned_to_user_id" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// Validate checks that every field is present
func (r *CreateGroupTaskRequest) Validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case r.AssignedTo == 0:
		return fmt.Errorf("%w: assigned_to_user_id is required", ErrValidation)
	case r.Status == "":
		return fmt.Errorf("%w: status is required", ErrValidation)
	}
	return nil
}

// UpdateStatusRequest represents the request to move a task on the board
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}
	return nil
}
