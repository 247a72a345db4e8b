package task

import (
	"errors"
	"strings"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotParticipant  = errors.New("you do not have access to this task")
	ErrInvalidAssignee = errors.New("assigned employee not found or inactive")
	ErrAdminOnly       = errors.New("admin access required")
)

// StateConflictError rejects an update whose status precondition no longer
// holds. It carries the status a concurrent writer left behind.
type StateConflictError struct {
	CurrentStatus Status
}

func (e *StateConflictError) Error() string {
	return "task was modified concurrently, current status: " + string(e.CurrentStatus)
}

// FieldAuthorizationError rejects an update because it touches fields the
// caller's role is not allowed to change. The whole update is refused, no
// partial application.
type FieldAuthorizationError struct {
	Fields []string
}

func (e *FieldAuthorizationError) Error() string {
	return "not allowed to update fields: " + strings.Join(e.Fields, ", ")
}
