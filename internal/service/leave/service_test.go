package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ems-backend-go/internal/domain/leave"
	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
	"github.com/staffdesk/ems-backend-go/internal/domain/user"
	"github.com/staffdesk/ems-backend-go/internal/pkg/validator"
)

type fakeLeaveRepo struct {
	createFn         func(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error)
	getByIDFn        func(ctx context.Context, id string) (leave.LeaveRequest, error)
	listByEmployeeFn func(ctx context.Context, employeeID string, f leave.Filter) ([]leave.LeaveRequest, error)
	listFn           func(ctx context.Context, f leave.Filter) ([]leave.LeaveRequest, error)
	resolvePendingFn func(ctx context.Context, id string, status leave.Status, reviewerID string, reviewedAt time.Time, comments *string) (int64, error)
	countByStatusFn  func(ctx context.Context) (map[leave.Status]int, error)
}

func (f *fakeLeaveRepo) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	return f.createFn(ctx, lr)
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string, filter leave.Filter) ([]leave.LeaveRequest, error) {
	return f.listByEmployeeFn(ctx, employeeID, filter)
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeLeaveRepo) ResolvePending(ctx context.Context, id string, status leave.Status, reviewerID string, reviewedAt time.Time, comments *string) (int64, error) {
	return f.resolvePendingFn(ctx, id, status, reviewerID, reviewedAt, comments)
}

func (f *fakeLeaveRepo) CountByStatus(ctx context.Context) (map[leave.Status]int, error) {
	return f.countByStatusFn(ctx)
}

type fakeSink struct {
	events []notification.Event
}

func (f *fakeSink) QueueNotification(_ context.Context, ev notification.Event) error {
	f.events = append(f.events, ev)
	return nil
}

var (
	employeeActor = user.Actor{ID: "emp-1", Name: "Dina Putri", Role: user.RoleEmployee}
	adminActor    = user.Actor{ID: "adm-1", Name: "Raka Wijaya", Role: user.RoleAdmin}
)

func newService(repo *fakeLeaveRepo, sink *fakeSink, now time.Time) *service {
	return &service{
		repo:     repo,
		notifier: sink,
		now:      func() time.Time { return now },
	}
}

func TestApplyCreatesPendingRequest(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)

	var stored leave.LeaveRequest
	repo := &fakeLeaveRepo{
		createFn: func(_ context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
			stored = lr
			lr.ID = "lv-1"
			lr.AppliedDate = now
			return lr, nil
		},
	}
	sink := &fakeSink{}
	svc := newService(repo, sink, now)

	resp, err := svc.Apply(context.Background(), employeeActor, leave.ApplyLeaveRequest{
		LeaveType: "casual",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Reason:    "  family event out of town  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "lv-1", resp.ID)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, "emp-1", stored.EmployeeID)
	assert.Equal(t, leave.StatusPending, stored.Status)
	assert.Equal(t, "family event out of town", stored.Reason)

	// Creation raises no notification.
	assert.Empty(t, sink.events)
}

func TestApplyRejectsAdmins(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	_, err := svc.Apply(context.Background(), adminActor, leave.ApplyLeaveRequest{
		LeaveType: "casual",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Reason:    "family event out of town",
	})
	assert.ErrorIs(t, err, leave.ErrEmployeeOnly)
}

func TestApplyValidation(t *testing.T) {
	now := time.Date(2026, time.September, 1, 15, 30, 0, 0, time.UTC)
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, now)

	cases := []struct {
		name  string
		req   leave.ApplyLeaveRequest
		field string
	}{
		{
			"unknown leave type",
			leave.ApplyLeaveRequest{LeaveType: "sabbatical", StartDate: "2026-09-10", EndDate: "2026-09-12", Reason: "family event out of town"},
			"leave_type",
		},
		{
			"bad date format",
			leave.ApplyLeaveRequest{LeaveType: "sick", StartDate: "10/09/2026", EndDate: "2026-09-12", Reason: "family event out of town"},
			"start_date",
		},
		{
			"start in the past",
			leave.ApplyLeaveRequest{LeaveType: "sick", StartDate: "2026-08-31", EndDate: "2026-09-12", Reason: "family event out of town"},
			"start_date",
		},
		{
			"end before start",
			leave.ApplyLeaveRequest{LeaveType: "sick", StartDate: "2026-09-12", EndDate: "2026-09-10", Reason: "family event out of town"},
			"end_date",
		},
		{
			"reason too short",
			leave.ApplyLeaveRequest{LeaveType: "sick", StartDate: "2026-09-10", EndDate: "2026-09-12", Reason: "short"},
			"reason",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Apply(context.Background(), employeeActor, c.req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}
}

func TestApplyAcceptsStartToday(t *testing.T) {
	// Late in the day must not push "today" into the past.
	now := time.Date(2026, time.September, 1, 23, 50, 0, 0, time.UTC)
	repo := &fakeLeaveRepo{
		createFn: func(_ context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
			lr.ID = "lv-1"
			return lr, nil
		},
	}
	svc := newService(repo, &fakeSink{}, now)

	_, err := svc.Apply(context.Background(), employeeActor, leave.ApplyLeaveRequest{
		LeaveType: "sick",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
		Reason:    "came down with a fever",
	})
	assert.NoError(t, err)
}

func pendingLeave() leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:         "lv-1",
		EmployeeID: "emp-1",
		LeaveType:  leave.TypeCasual,
		StartDate:  time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		TotalDays:  3,
		Reason:     "family event out of town",
		Status:     leave.StatusPending,
	}
}

func TestResolveApprovesAndNotifies(t *testing.T) {
	now := time.Date(2026, time.September, 2, 10, 0, 0, 0, time.UTC)

	current := pendingLeave()
	var resolvedStatus leave.Status
	repo := &fakeLeaveRepo{
		getByIDFn: func(_ context.Context, id string) (leave.LeaveRequest, error) {
			return current, nil
		},
		resolvePendingFn: func(_ context.Context, id string, status leave.Status, reviewerID string, reviewedAt time.Time, comments *string) (int64, error) {
			resolvedStatus = status
			current.Status = status
			current.ReviewedBy = &reviewerID
			current.ReviewedAt = &reviewedAt
			current.AdminComments = comments
			return 1, nil
		},
	}
	sink := &fakeSink{}
	svc := newService(repo, sink, now)

	resp, err := svc.Resolve(context.Background(), adminActor, "lv-1", leave.ResolveLeaveRequest{
		Decision:      "approved",
		AdminComments: "Enjoy",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, resolvedStatus)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "adm-1", *resp.ReviewedBy)
	require.NotNil(t, resp.AdminComments)
	assert.Equal(t, "Enjoy", *resp.AdminComments)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "emp-1", ev.RecipientID)
	assert.Equal(t, notification.TypeLeaveStatus, ev.Type)
	assert.Contains(t, ev.Message, "approved")
	assert.Contains(t, ev.Message, "Raka Wijaya")
	require.NotNil(t, ev.RelatedID)
	assert.Equal(t, "lv-1", *ev.RelatedID)
}

func TestResolveRejectsNonAdmin(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	_, err := svc.Resolve(context.Background(), employeeActor, "lv-1", leave.ResolveLeaveRequest{Decision: "approved"})
	assert.ErrorIs(t, err, leave.ErrAdminOnly)
}

func TestResolveRejectsInvalidDecision(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	_, err := svc.Resolve(context.Background(), adminActor, "lv-1", leave.ResolveLeaveRequest{Decision: "pending"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestResolveAlreadyReviewed(t *testing.T) {
	reviewed := pendingLeave()
	reviewed.Status = leave.StatusApproved

	sink := &fakeSink{}
	repo := &fakeLeaveRepo{
		getByIDFn: func(_ context.Context, id string) (leave.LeaveRequest, error) {
			return reviewed, nil
		},
	}
	svc := newService(repo, sink, time.Now())

	_, err := svc.Resolve(context.Background(), adminActor, "lv-1", leave.ResolveLeaveRequest{Decision: "rejected"})
	var conflictErr *leave.AlreadyReviewedError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, leave.StatusApproved, conflictErr.CurrentStatus)
	assert.Empty(t, sink.events)
}

func TestResolveLostRace(t *testing.T) {
	// Pending at read time, but another reviewer lands first.
	calls := 0
	sink := &fakeSink{}
	repo := &fakeLeaveRepo{
		getByIDFn: func(_ context.Context, id string) (leave.LeaveRequest, error) {
			calls++
			lr := pendingLeave()
			if calls > 1 {
				// The reload after the failed swap sees the winner's write.
				lr.Status = leave.StatusRejected
			}
			return lr, nil
		},
		resolvePendingFn: func(_ context.Context, id string, status leave.Status, reviewerID string, reviewedAt time.Time, comments *string) (int64, error) {
			return 0, nil
		},
	}
	svc := newService(repo, sink, time.Now())

	_, err := svc.Resolve(context.Background(), adminActor, "lv-1", leave.ResolveLeaveRequest{Decision: "approved"})
	var conflictErr *leave.AlreadyReviewedError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, leave.StatusRejected, conflictErr.CurrentStatus)
	assert.Empty(t, sink.events)
}

func TestResolveNotFound(t *testing.T) {
	repo := &fakeLeaveRepo{
		getByIDFn: func(_ context.Context, id string) (leave.LeaveRequest, error) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		},
	}
	svc := newService(repo, &fakeSink{}, time.Now())

	_, err := svc.Resolve(context.Background(), adminActor, "missing", leave.ResolveLeaveRequest{Decision: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestListMineScopesToActor(t *testing.T) {
	var gotEmployeeID string
	repo := &fakeLeaveRepo{
		listByEmployeeFn: func(_ context.Context, employeeID string, f leave.Filter) ([]leave.LeaveRequest, error) {
			gotEmployeeID = employeeID
			return []leave.LeaveRequest{pendingLeave()}, nil
		},
	}
	svc := newService(repo, &fakeSink{}, time.Now())

	out, err := svc.ListMine(context.Background(), employeeActor, leave.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", gotEmployeeID)
	assert.Len(t, out, 1)
}

func TestListAllAdminOnly(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	_, err := svc.ListAll(context.Background(), employeeActor, leave.Filter{})
	assert.ErrorIs(t, err, leave.ErrAdminOnly)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	bad := "archived"
	_, err := svc.ListAll(context.Background(), adminActor, leave.Filter{Status: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestStatisticsSumsCounts(t *testing.T) {
	repo := &fakeLeaveRepo{
		countByStatusFn: func(_ context.Context) (map[leave.Status]int, error) {
			return map[leave.Status]int{
				leave.StatusPending:  2,
				leave.StatusApproved: 5,
				leave.StatusRejected: 1,
			}, nil
		},
	}
	svc := newService(repo, &fakeSink{}, time.Now())

	stats, err := svc.Statistics(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, leave.Stats{Pending: 2, Approved: 5, Rejected: 1, Total: 8}, stats)
}

func TestStatisticsAdminOnly(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeSink{}, time.Now())

	_, err := svc.Statistics(context.Background(), employeeActor)
	assert.ErrorIs(t, err, leave.ErrAdminOnly)
}
