package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/staffdesk/ems-backend-go/internal/domain/leave"
	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

type service struct {
	repo     leave.Repository
	notifier notification.Sink
	now      func() time.Time
}

func NewLeaveService(repo leave.Repository, notifier notification.Sink) leave.Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Apply files a new leave request for the calling employee. The request is
// born pending and the day count is derived server-side.
func (s *service) Apply(ctx context.Context, actor user.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if !actor.IsEmployee() {
		return leave.LeaveResponse{}, leave.ErrEmployeeOnly
	}

	now := s.now()
	if err := req.Validate(now); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: actor.ID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		TotalDays:  leave.CalculateTotalDays(start, end),
		Reason:     strings.TrimSpace(req.Reason),
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(created), nil
}

// Resolve is the single irreversible admin decision on a pending request.
// A request that already left pending stays exactly as its first reviewer
// wrote it.
func (s *service) Resolve(ctx context.Context, actor user.Actor, leaveID string, req leave.ResolveLeaveRequest) (leave.LeaveResponse, error) {
	if !actor.IsAdmin() {
		return leave.LeaveResponse{}, leave.ErrAdminOnly
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if current.Status != leave.StatusPending {
		return leave.LeaveResponse{}, &leave.AlreadyReviewedError{CurrentStatus: current.Status}
	}

	status := leave.Status(req.Decision)
	var comments *string
	if trimmed := strings.TrimSpace(req.AdminComments); trimmed != "" {
		comments = &trimmed
	}

	affected, err := s.repo.ResolvePending(ctx, leaveID, status, actor.ID, s.now(), comments)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if affected == 0 {
		// Lost the race against another reviewer. Report whatever they wrote.
		winner, err := s.repo.GetByID(ctx, leaveID)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, &leave.AlreadyReviewedError{CurrentStatus: winner.Status}
	}

	resolved, err := s.repo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := s.notifier.QueueNotification(ctx, leaveStatusEvent(resolved, actor)); err != nil {
		slog.Error("failed to queue leave status notification", "leave_id", leaveID, "error", err)
	}

	return leave.ToResponse(resolved), nil
}

// leaveStatusEvent builds the single notification a resolution owes the
// requesting employee.
func leaveStatusEvent(lr leave.LeaveRequest, reviewer user.Actor) notification.Event {
	kind := notification.RelatedLeave
	senderID := reviewer.ID
	return notification.Event{
		RecipientID: lr.EmployeeID,
		SenderID:    &senderID,
		Type:        notification.TypeLeaveStatus,
		Title:       fmt.Sprintf("Leave request %s", lr.Status),
		Message: fmt.Sprintf("Your %s leave request (%s to %s) has been %s by %s",
			lr.LeaveType,
			lr.StartDate.Format("2006-01-02"),
			lr.EndDate.Format("2006-01-02"),
			lr.Status,
			reviewer.Name,
		),
		RelatedID:   &lr.ID,
		RelatedKind: &kind,
	}
}

func (s *service) ListMine(ctx context.Context, actor user.Actor, filter leave.Filter) ([]leave.LeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByEmployee(ctx, actor.ID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (s *service) ListAll(ctx context.Context, actor user.Actor, filter leave.Filter) ([]leave.LeaveResponse, error) {
	if !actor.IsAdmin() {
		return nil, leave.ErrAdminOnly
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (s *service) Statistics(ctx context.Context, actor user.Actor) (leave.Stats, error) {
	if !actor.IsAdmin() {
		return leave.Stats{}, leave.ErrAdminOnly
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return leave.Stats{}, err
	}

	stats := leave.Stats{
		Pending:  counts[leave.StatusPending],
		Approved: counts[leave.StatusApproved],
		Rejected: counts[leave.StatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	out := make([]leave.LeaveResponse, 0, len(requests))
	for _, lr := range requests {
		out = append(out, leave.ToResponse(lr))
	}
	return out
}
