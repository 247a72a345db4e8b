package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
	"github.com/staffdesk/ems-backend-go/internal/domain/task"
	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

type service struct {
	repo     task.Repository
	users    user.Repository
	notifier notification.Sink
	now      func() time.Time
}

func NewTaskService(repo task.Repository, users user.Repository, notifier notification.Sink) task.Service {
	return &service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create assigns a new task to an employee. Admin only. Priority and category
// fall back to their defaults when omitted.
func (s *service) Create(ctx context.Context, actor user.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if !actor.IsAdmin() {
		return task.TaskResponse{}, task.ErrAdminOnly
	}
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if err := s.validateAssignee(ctx, req.AssignedTo); err != nil {
		return task.TaskResponse{}, err
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	priority := task.PriorityMedium
	if req.Priority != nil {
		priority = task.Priority(*req.Priority)
	}
	category := task.DefaultCategory
	if req.Category != nil {
		category = *req.Category
	}

	created, err := s.repo.Create(ctx, task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actor.ID,
		Priority:    priority,
		Status:      task.StatusPending,
		DueDate:     dueDate,
		Category:    category,
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	s.queue(ctx, taskAssignedEvent(created, actor))

	// Reload for the assignee/assigner projections.
	full, err := s.repo.GetByID(ctx, created.ID)
	if err != nil {
		return task.ToResponse(created), nil
	}
	return task.ToResponse(full), nil
}

// validateAssignee requires an existing, active employee account.
func (s *service) validateAssignee(ctx context.Context, assigneeID string) error {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.ErrInvalidAssignee
		}
		return err
	}
	if assignee.Role != user.RoleEmployee || !assignee.IsActive {
		return task.ErrInvalidAssignee
	}
	return nil
}

func (s *service) Get(ctx context.Context, actor user.Actor, taskID string) (task.TaskResponse, error) {
	t, err := s.load(ctx, actor, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	comments, err := s.repo.ListComments(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	t.Comments = comments

	return task.ToResponse(t), nil
}

// load fetches the task and applies the access rule: admins see every task,
// employees only tasks they participate in.
func (s *service) load(ctx context.Context, actor user.Actor, taskID string) (task.Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return task.Task{}, err
	}
	if !actor.IsAdmin() && !t.IsParticipant(actor.ID) {
		return task.Task{}, task.ErrNotParticipant
	}
	return t, nil
}

func (s *service) List(ctx context.Context, actor user.Actor, filter task.ListFilter) ([]task.TaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := task.Filter{
		Status:     filter.Status,
		Priority:   filter.Priority,
		Category:   filter.Category,
		AssignedTo: filter.AssignedTo,
	}
	if !actor.IsAdmin() {
		assignedTo := actor.ID
		repoFilter.AssignedTo = &assignedTo
	}

	tasks, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	out := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, task.ToResponse(t))
	}
	return out, nil
}

// Update applies a partial update under the per-role field rules. An employee
// payload touching any admin-owned field is rejected whole, nothing is
// applied.
func (s *service) Update(ctx context.Context, actor user.Actor, taskID string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.load(ctx, actor, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if !actor.IsAdmin() {
		if disallowed := req.DisallowedForEmployee(); len(disallowed) > 0 {
			return task.TaskResponse{}, &task.FieldAuthorizationError{Fields: disallowed}
		}
	}

	if len(req.ChangedFields()) == 0 {
		return task.ToResponse(current), nil
	}

	if req.AssignedTo != nil && *req.AssignedTo != current.AssignedTo {
		if err := s.validateAssignee(ctx, *req.AssignedTo); err != nil {
			return task.TaskResponse{}, err
		}
	}

	changes := task.UpdateChanges{
		Title:           req.Title,
		Description:     req.Description,
		AssignedTo:      req.AssignedTo,
		Category:        req.Category,
		SubmissionNote:  req.SubmissionNote,
		SubmissionFiles: req.SubmissionFiles,
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		changes.Priority = &p
	}
	if req.DueDate != nil {
		d, _ := time.Parse("2006-01-02", *req.DueDate)
		changes.DueDate = &d
	}

	statusChanged := false
	var expectedStatus *task.Status
	if req.Status != nil {
		newStatus := task.Status(*req.Status)
		statusChanged = newStatus != current.Status
		if statusChanged {
			changes.Status = &newStatus
			// CompletedAt tracks the completed status exactly.
			changes.SetCompletedAt = true
			if newStatus == task.StatusCompleted {
				completedAt := s.now()
				changes.CompletedAt = &completedAt
			}
			// Guard the transition against concurrent writers.
			prev := current.Status
			expectedStatus = &prev
		}
	}

	affected, err := s.repo.Update(ctx, taskID, changes, expectedStatus)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if affected == 0 {
		// Either the row is gone or a concurrent transition won. Reload to
		// tell the two apart and to report the state the winner left.
		winner, err := s.repo.GetByID(ctx, taskID)
		if err != nil {
			return task.TaskResponse{}, err
		}
		return task.TaskResponse{}, &task.StateConflictError{CurrentStatus: winner.Status}
	}

	updated, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if statusChanged {
		s.queue(ctx, taskUpdatedEvent(updated, actor))
	}

	return task.ToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, actor user.Actor, taskID string) error {
	if !actor.IsAdmin() {
		return task.ErrAdminOnly
	}

	affected, err := s.repo.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (s *service) AddComment(ctx context.Context, actor user.Actor, taskID string, req task.AddCommentRequest) (task.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return task.CommentResponse{}, err
	}

	t, err := s.load(ctx, actor, taskID)
	if err != nil {
		return task.CommentResponse{}, err
	}

	created, err := s.repo.AddComment(ctx, task.Comment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Message:  strings.TrimSpace(req.Message),
	})
	if err != nil {
		return task.CommentResponse{}, err
	}
	created.AuthorName = &actor.Name

	s.queue(ctx, commentAddedEvent(t, actor))

	return task.ToCommentResponse(created), nil
}

func (s *service) Statistics(ctx context.Context, actor user.Actor) (task.Stats, error) {
	var assignedTo *string
	if !actor.IsAdmin() {
		id := actor.ID
		assignedTo = &id
	}

	counts, err := s.repo.CountByStatus(ctx, assignedTo)
	if err != nil {
		return task.Stats{}, err
	}

	stats := task.Stats{
		Pending:    counts[task.StatusPending],
		InProgress: counts[task.StatusInProgress],
		Completed:  counts[task.StatusCompleted],
		Cancelled:  counts[task.StatusCancelled],
	}
	stats.Total = stats.Pending + stats.InProgress + stats.Completed + stats.Cancelled
	return stats, nil
}

func (s *service) queue(ctx context.Context, ev notification.Event) {
	if err := s.notifier.QueueNotification(ctx, ev); err != nil {
		slog.Error("failed to queue task notification", "recipient", ev.RecipientID, "type", ev.Type, "error", err)
	}
}

// ============= Notification event builders =============

func taskAssignedEvent(t task.Task, assigner user.Actor) notification.Event {
	kind := notification.RelatedTask
	senderID := assigner.ID
	return notification.Event{
		RecipientID: t.AssignedTo,
		SenderID:    &senderID,
		Type:        notification.TypeTaskAssigned,
		Title:       "New task assigned",
		Message:     fmt.Sprintf("%s assigned you a new task: %s", assigner.Name, t.Title),
		RelatedID:   &t.ID,
		RelatedKind: &kind,
	}
}

// otherParty picks the recipient across the admin/employee divide: an admin
// action notifies the assignee, an employee action notifies the assigner.
func otherParty(t task.Task, actor user.Actor) string {
	if actor.IsAdmin() {
		return t.AssignedTo
	}
	return t.AssignedBy
}

func taskUpdatedEvent(t task.Task, actor user.Actor) notification.Event {
	kind := notification.RelatedTask
	senderID := actor.ID
	return notification.Event{
		RecipientID: otherParty(t, actor),
		SenderID:    &senderID,
		Type:        notification.TypeTaskUpdated,
		Title:       "Task status updated",
		Message:     fmt.Sprintf("%s moved task %q to %s", actor.Name, t.Title, t.Status),
		RelatedID:   &t.ID,
		RelatedKind: &kind,
	}
}

func commentAddedEvent(t task.Task, author user.Actor) notification.Event {
	kind := notification.RelatedTask
	senderID := author.ID
	return notification.Event{
		RecipientID: otherParty(t, author),
		SenderID:    &senderID,
		Type:        notification.TypeCommentAdded,
		Title:       "New comment on task",
		Message:     fmt.Sprintf("%s commented on task %q", author.Name, t.Title),
		RelatedID:   &t.ID,
		RelatedKind: &kind,
	}
}
