package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/ems-backend-go/internal/domain/leave"
	"github.com/staffdesk/ems-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelectColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.total_days,
	lr.reason, lr.status, lr.applied_date, lr.reviewed_by, lr.reviewed_at, lr.admin_comments,
	lr.created_at, lr.updated_at,
	e.name AS employee_name, e.email AS employee_email, e.employee_code,
	rv.name AS reviewer_name
`

const leaveSelectJoins = `
	FROM leave_requests lr
	JOIN users e ON lr.employee_id = e.id
	LEFT JOIN users rv ON lr.reviewed_by = rv.id
`

func scanLeaveRow(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.Reason,
		&lr.Status,
		&lr.AppliedDate,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.AdminComments,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.EmployeeEmail,
		&lr.EmployeeCode,
		&lr.ReviewerName,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, total_days,
			reason, status, applied_date, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, NOW(), NOW(), NOW()
		) RETURNING id, applied_date, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate, request.TotalDays,
		request.Reason, request.Status,
	).Scan(&request.ID, &request.AppliedDate, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveSelectColumns + leaveSelectJoins + ` WHERE lr.id = $1`

	lr, err := scanLeaveRow(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return lr, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.Filter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveSelectColumns + leaveSelectJoins + ` WHERE lr.employee_id = $1`
	args := []any{employeeID}
	if filter.Status != nil {
		query += ` AND lr.status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY lr.applied_date DESC, lr.id DESC`

	return r.queryLeaves(ctx, q, query, args...)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveSelectColumns + leaveSelectJoins
	var args []any
	if filter.Status != nil {
		query += ` WHERE lr.status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY lr.applied_date DESC, lr.id DESC`

	return r.queryLeaves(ctx, q, query, args...)
}

func (r *leaveRequestRepositoryImpl) queryLeaves(ctx context.Context, q database.Querier, query string, args ...any) ([]leave.LeaveRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRow(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ResolvePending(ctx context.Context, id string, status leave.Status, reviewerID string, reviewedAt time.Time, adminComments *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// The status predicate makes this a compare-and-swap: a request already
	// reviewed by a concurrent admin matches zero rows.
	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, admin_comments = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, reviewerID, reviewedAt, adminComments)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context) (map[leave.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM leave_requests
		GROUP BY status
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[leave.Status]int)
	for rows.Next() {
		var status leave.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
