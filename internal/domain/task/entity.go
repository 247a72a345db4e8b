package task

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const DefaultCategory = "General"

// IsValidStatus reports whether s names a known task status.
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsValidPriority reports whether p names a known priority.
func IsValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task entity. Created by an admin, worked by exactly one assigned employee.
// The assigning admin may change any field; the assignee only reports progress
// (status, submission fields) and comments.
type Task struct {
	ID          string
	Title       string
	Description string

	AssignedTo string
	AssignedBy string

	Priority Priority
	Status   Status
	DueDate  time.Time
	Category string

	SubmissionNote  *string
	SubmissionFiles []string

	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	AssigneeName  *string
	AssigneeEmail *string
	AssigneeCode  *string
	AssignerName  *string
	AssignerEmail *string

	Comments []Comment
}

// IsParticipant reports whether the given user has standing on this task.
func (t Task) IsParticipant(userID string) bool {
	return t.AssignedTo == userID || t.AssignedBy == userID
}

// OtherParty returns the participant that is not the actor: updates by the
// admin notify the assignee and vice versa.
func (t Task) OtherParty(actorID string) string {
	if actorID == t.AssignedBy {
		return t.AssignedTo
	}
	return t.AssignedBy
}

// Comment is one entry of the append-only discussion log on a task.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Message   string
	CreatedAt time.Time

	AuthorName  *string
	AuthorEmail *string
}
