package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*notification.Notification

	getByRecipientFn func(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error)
	unreadCountFn    func(ctx context.Context, recipientID string) (int, error)
	markAsReadFn     func(ctx context.Context, ids []string, recipientID string) (int64, error)
	markAllFn        func(ctx context.Context, recipientID string) error
	deleteFn         func(ctx context.Context, id, recipientID string) (int64, error)
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, ns...)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	return f.getByRecipientFn(ctx, recipientID, page, pageSize, unreadOnly)
}

func (f *fakeNotificationRepo) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	return f.unreadCountFn(ctx, recipientID)
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, ids []string, recipientID string) (int64, error) {
	return f.markAsReadFn(ctx, ids, recipientID)
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return f.markAllFn(ctx, recipientID)
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id, recipientID string) (int64, error) {
	return f.deleteFn(ctx, id, recipientID)
}

func (f *fakeNotificationRepo) all() []*notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*notification.Notification(nil), f.created...)
}

func TestQueueFlushesOnStop(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{WorkerCount: 1, QueueSize: 16, BatchSize: 100, FlushInterval: time.Minute})

	for i := 0; i < 5; i++ {
		err := svc.QueueNotification(context.Background(), notification.Event{
			RecipientID: "emp-1",
			Type:        notification.TypeTaskAssigned,
			Title:       "New task assigned",
			Message:     "you have work to do",
		})
		require.NoError(t, err)
	}

	svc.Stop()

	created := repo.all()
	require.Len(t, created, 5)
	for _, n := range created {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "emp-1", n.RecipientID)
		assert.False(t, n.IsRead)
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestQueueFullFallsBackToDirectInsert(t *testing.T) {
	repo := &fakeNotificationRepo{}
	// No workers: nothing drains the queue, so the second event overflows.
	s := &service{
		repo:   repo,
		config: Config{QueueSize: 1},
		queue:  make(chan notification.Event, 1),
		stopCh: make(chan struct{}),
	}

	require.NoError(t, s.QueueNotification(context.Background(), notification.Event{RecipientID: "emp-1"}))
	require.NoError(t, s.QueueNotification(context.Background(), notification.Event{RecipientID: "emp-2"}))

	created := repo.all()
	require.Len(t, created, 1)
	assert.Equal(t, "emp-2", created[0].RecipientID)
}

func TestListClampsPaging(t *testing.T) {
	repo := &fakeNotificationRepo{
		getByRecipientFn: func(_ context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, 20, pageSize)
			return []*notification.Notification{{ID: "n-1", RecipientID: recipientID}}, 1, nil
		},
		unreadCountFn: func(_ context.Context, recipientID string) (int, error) {
			return 1, nil
		},
	}
	s := &service{repo: repo}

	resp, err := s.List(context.Background(), "emp-1", notification.ListRequest{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.UnreadCount)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "n-1", resp.Notifications[0].ID)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := &fakeNotificationRepo{
		deleteFn: func(_ context.Context, id, recipientID string) (int64, error) {
			if recipientID == "emp-1" {
				return 1, nil
			}
			return 0, nil
		},
	}
	s := &service{repo: repo}

	assert.NoError(t, s.Delete(context.Background(), "emp-1", "n-1"))
	assert.ErrorIs(t, s.Delete(context.Background(), "emp-2", "n-1"), notification.ErrNotificationNotFound)
}
