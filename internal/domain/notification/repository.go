package notification

import "context"

// Repository - interface for the notifications table.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error
	GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) (int64, error)
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, id string, recipientID string) (int64, error)
}
