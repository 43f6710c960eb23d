// Package authz holds the capability checks gating every mutation. Each
// check is a named predicate over (principal, resource) so tightening or
// relaxing a rule is a one-line change, and each predicate documents which
// identity form (user id or username) it compares against.
package authz

import "github.com/dcastellm/taskboard/internal/auth"

// Rules carries the toggles for the ownership checks. Both default to
// enforced; switching one off restores the permissive legacy behavior for
// deployments that relied on it.
type Rules struct {
	// EnforceTaskOwnership requires owner-or-admin on personal task
	// edit and delete.
	EnforceTaskOwnership bool
	// EnforceUserSelfService requires self-or-admin on user update
	// and delete.
	EnforceUserSelfService bool
}

// CanMutatePersonalTask reports whether the principal may edit or delete a
// personal task. Compares by username: personal tasks are keyed by the
// owner's username, not their id.
func (r Rules) CanMutatePersonalTask(p *auth.Principal, ownerUsername string) bool {
	if !r.EnforceTaskOwnership {
		return true
	}
	return p.Username == ownerUsername || p.Role == auth.RoleAdmin
}

// CanMutateUser reports whether the principal may update or delete the user
// record with the given id. Compares by user id.
func (r Rules) CanMutateUser(p *auth.Principal, targetUserID int64) bool {
	if !r.EnforceUserSelfService {
		return true
	}
	return p.UserID == targetUserID || p.Role == auth.RoleAdmin
}

// CanCreateGroupTask reports whether the principal may create a task in a
// group. Only the group's creator may. Compares by user id.
func CanCreateGroupTask(p *auth.Principal, groupCreatorID int64) bool {
	return p.UserID == groupCreatorID
}

// CanUpdateGroupTaskStatus reports whether the principal may move a group
// task to a new status. Only the assigned user may. Compares by user id.
func CanUpdateGroupTaskStatus(p *auth.Principal, assignedToUserID int64) bool {
	return p.UserID == assignedToUserID
}
