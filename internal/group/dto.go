package group

import "fmt"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required"`
	MemberIDs   []int64 `json:"member_ids" validate:"required,min=1"`
}

// Validate checks the group fields; the member set must be non-empty.
func (r *CreateGroupRequest) Validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case len(r.MemberIDs) == 0:
		return fmt.Errorf("%w: member_ids must be a non-empty list", ErrValidation)
	}
	return nil
}
