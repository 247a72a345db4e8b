package notification

import "context"

// Sink is the narrow producer-side surface the workflow engines depend on.
// Enqueueing is best effort: a full queue or a down store must never fail the
// operation that raised the event.
type Sink interface {
	QueueNotification(ctx context.Context, ev Event) error
}

// Service is the full notification surface: the Sink for producers plus the
// read side the HTTP handlers expose.
type Service interface {
	Sink

	List(ctx context.Context, recipientID string, req ListRequest) (*ListResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID string, notificationID string) error

	Stop()
}
