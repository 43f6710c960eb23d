package grouptask

import "time"

// Board columns. The board renders these three statuses; the server writes
// whatever non-empty status the assigned user supplies, so a transition
// between any two values is a single-field write.
const (
	StatusToDo       = "ToDo"
	StatusInProgress = "InProgress"
	StatusDone       = "Done"
)

// GroupTask represents a task scoped to a group and assigned to one member
type GroupTask struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"group_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  int64      `json:"assigned_to_user_id"`
	CreatedBy   int64      `json:"created_by_user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
