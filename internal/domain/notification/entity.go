package notification

import "time"

// Type names the workflow event a notification was born from.
type Type string

const (
	TypeTaskAssigned Type = "task_assigned"
	TypeTaskUpdated  Type = "task_updated"
	TypeCommentAdded Type = "comment_added"
	TypeLeaveStatus  Type = "leave_status"
)

// RelatedKind says which aggregate RelatedID points at.
type RelatedKind string

const (
	RelatedTask  RelatedKind = "task"
	RelatedLeave RelatedKind = "leave_request"
)

// Notification is one in-app message for a single recipient. Delivery is
// persistence: the client polls the list and unread-count endpoints.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	RelatedID   *string
	RelatedKind *RelatedKind
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
