package notification

import "time"

// ============= Request DTOs =============

// Event is the internal payload workflow services hand to the queue. It never
// crosses the HTTP boundary.
type Event struct {
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	RelatedID   *string
	RelatedKind *RelatedKind
}

// MarkAsReadRequest marks a batch of the caller's notifications as read.
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

// ListRequest pages through a recipient's notifications.
type ListRequest struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// ============= Response DTOs =============

type NotificationResponse struct {
	ID          string       `json:"id"`
	Type        Type         `json:"type"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	RelatedID   *string      `json:"related_id,omitempty"`
	RelatedKind *RelatedKind `json:"related_kind,omitempty"`
	IsRead      bool         `json:"is_read"`
	ReadAt      *time.Time   `json:"read_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

func ToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		RelatedKind: n.RelatedKind,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}
