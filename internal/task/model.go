package task

import "time"

// Task represents a personal task owned by a single user. Status is a
// free-form string; the dashboard conventionally uses InProgress, Done,
// Paused and Revision but the server does not restrict it.
type Task struct {
	ID              int64      `json:"id"`
	Owner           string     `json:"owner"`
	Category        string     `json:"category"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	TimeUntilFinish time.Time  `json:"time_until_finish"`
	RemindMe        time.Time  `json:"remind_me"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
