package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
)

// Config tunes the background insert pipeline.
type Config struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

type service struct {
	repo   notification.Repository
	config Config

	queue  chan notification.Event
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts the background workers that drain the event
// queue into batched inserts. Call Stop to flush and shut them down.
func NewNotificationService(repo notification.Repository, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}

	s := &service{
		repo:   repo,
		config: cfg,
		queue:  make(chan notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Event, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, ev := range batch {
			notifications[i] = eventToEntity(ev)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("notification batch insert failed", "worker", id, "count", len(notifications), "error", err)
		}

		batch = batch[:0]
	}

	for {
		select {
		case ev := <-s.queue:
			batch = append(batch, ev)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever producers managed to enqueue before Stop.
			for {
				select {
				case ev := <-s.queue:
					batch = append(batch, ev)
				default:
					flush()
					return
				}
			}
		}
	}
}

func eventToEntity(ev notification.Event) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: ev.RecipientID,
		SenderID:    ev.SenderID,
		Type:        ev.Type,
		Title:       ev.Title,
		Message:     ev.Message,
		RelatedID:   ev.RelatedID,
		RelatedKind: ev.RelatedKind,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

// QueueNotification enqueues one event for async persistence. When the queue
// is full it falls back to a direct insert rather than dropping the event.
func (s *service) QueueNotification(ctx context.Context, ev notification.Event) error {
	select {
	case s.queue <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return s.repo.Create(ctx, eventToEntity(ev))
	}
}

func (s *service) List(ctx context.Context, recipientID string, req notification.ListRequest) (*notification.ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	ns, total, err := s.repo.GetByRecipient(ctx, recipientID, req.Page, req.PageSize, req.UnreadOnly)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	resp := &notification.ListResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(ns)),
		Total:         total,
		UnreadCount:   unread,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}
	for _, n := range ns {
		resp.Notifications = append(resp.Notifications, notification.ToResponse(n))
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, recipientID)
}

func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	if len(req.NotificationIDs) == 0 {
		return nil
	}
	_, err := s.repo.MarkAsRead(ctx, req.NotificationIDs, recipientID)
	return err
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

func (s *service) Delete(ctx context.Context, recipientID string, notificationID string) error {
	affected, err := s.repo.Delete(ctx, notificationID, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// Stop flushes in-flight batches and waits for the workers to exit.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("notification service stopped")
}
