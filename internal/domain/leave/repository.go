package leave

import (
	"context"
	"time"
)

// Repository - interface for the leave_requests table.
type Repository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]LeaveRequest, error)
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)

	// ResolvePending is the compare-and-swap that guards the state machine: it
	// moves the request out of pending only if it is still pending, and reports
	// how many rows changed (0 means another reviewer won the race).
	ResolvePending(ctx context.Context, id string, status Status, reviewerID string, reviewedAt time.Time, adminComments *string) (int64, error)

	CountByStatus(ctx context.Context) (map[Status]int, error)
}
