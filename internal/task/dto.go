package task

import (
	"fmt"
	"time"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Category        string    `json:"category" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	Description     string    `json:"description" validate:"required"`
	Status          string    `json:"status" validate:"required"`
	TimeUntilFinish time.Time `json:"time_until_finish" validate:"required"`
	RemindMe        time.Time `json:"remind_me" validate:"required"`
}

// Validate checks that every field is present
func (r *CreateTaskRequest) Validate() error {
	switch {
	case r.Category == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case r.Status == "":
		return fmt.Errorf("%w: status is required", ErrValidation)
	case r.TimeUntilFinish.IsZero():
		return fmt.Errorf("%w: time_until_finish is required", ErrValidation)
	case r.RemindMe.IsZero():
		return fmt.Errorf("%w: remind_me is required", ErrValidation)
	}
	return nil
}

// UpdateTaskRequest represents the request body for a partial task update
type UpdateTaskRequest struct {
	Category        *string    `json:"category,omitempty"`
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Status          *string    `json:"status,omitempty"`
	TimeUntilFinish *time.Time `json:"time_until_finish,omitempty"`
	RemindMe        *time.Time `json:"remind_me,omitempty"`
}

// DeleteTaskRequest carries the id of the task to delete. The delete
// endpoint takes the id in the request body rather than the path.
type DeleteTaskRequest struct {
	ID int64 `json:"id" validate:"required"`
}
