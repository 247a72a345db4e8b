package task

import (
	"context"
	"time"
)

// Filter narrows task listings. Nil fields mean no constraint.
type Filter struct {
	Status     *string
	Priority   *string
	Category   *string
	AssignedTo *string
	AssignedBy *string
}

// UpdateChanges carries only the columns the caller actually supplied. Nil
// pointers are left untouched. CompletedAt is tri-state (set, clear, keep),
// hence the separate flag.
type UpdateChanges struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Priority    *Priority
	Status      *Status
	DueDate     *time.Time
	Category    *string

	SubmissionNote  *string
	SubmissionFiles *[]string

	SetCompletedAt bool
	CompletedAt    *time.Time
}

// Repository - interface for the tasks and task_comments tables.
type Repository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter Filter) ([]Task, error)

	// Update applies the supplied changes and reports how many rows matched.
	// When expectedStatus is non-nil the update only lands if the row still
	// carries that status, which is the guard against concurrent transitions.
	Update(ctx context.Context, id string, changes UpdateChanges, expectedStatus *Status) (int64, error)

	Delete(ctx context.Context, id string) (int64, error)

	// CountByStatus scopes to one assignee when assignedTo is non-nil.
	CountByStatus(ctx context.Context, assignedTo *string) (map[Status]int, error)

	AddComment(ctx context.Context, c Comment) (Comment, error)
	ListComments(ctx context.Context, taskID string) ([]Comment, error)
}
