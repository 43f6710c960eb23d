package group

import "time"

// Group represents a collaboration group. Membership is fixed at creation;
// member order is irrelevant.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []int64   `json:"member_ids"`
	CreatedBy   int64     `json:"created_by_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
