package leave

import (
	"strings"
	"time"

	"github.com/staffdesk/ems-backend-go/internal/domain/user"
	"github.com/staffdesk/ems-backend-go/internal/pkg/validator"
)

const (
	ReasonMinLen        = 10
	ReasonMaxLen        = 500
	AdminCommentsMaxLen = 500
)

// ============= Request DTOs =============

// ApplyLeaveRequest is the payload for creating a leave request.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Validate checks field presence, formats and ranges. Date ordering against
// "today" is validated relative to now, truncated to day granularity.
func (r ApplyLeaveRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave type is required"})
	} else if !IsValidType(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "unknown leave type"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date is required"})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "invalid date format, expected YYYY-MM-DD"})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date is required"})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "invalid date format, expected YYYY-MM-DD"})
	}

	if startOK && start.Before(truncateToDay(now)) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date cannot be in the past"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date cannot be before start date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	} else if !validator.TrimmedLenInRange(r.Reason, ReasonMinLen, ReasonMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be between 10 and 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolveLeaveRequest is the payload for the admin decision.
type ResolveLeaveRequest struct {
	Decision      string `json:"decision"`
	AdminComments string `json:"admin_comments"`
}

func (r ResolveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidDecision(r.Decision) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be approved or rejected"})
	}
	if !validator.TrimmedLenInRange(r.AdminComments, 0, AdminCommentsMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "admin_comments", Message: "admin comments must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows leave listings.
type Filter struct {
	Status *string
}

func (f Filter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
	}) {
		return validator.ValidationErrors{{Field: "status", Message: "unknown status filter"}}
	}
	return nil
}

// ============= Response DTOs =============

type LeaveResponse struct {
	ID            string           `json:"id"`
	Employee      *user.Projection `json:"employee,omitempty"`
	LeaveType     Type             `json:"leave_type"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	TotalDays     int              `json:"total_days"`
	Reason        string           `json:"reason"`
	Status        Status           `json:"status"`
	AppliedDate   time.Time        `json:"applied_date"`
	ReviewedBy    *string          `json:"reviewed_by,omitempty"`
	ReviewerName  *string          `json:"reviewer_name,omitempty"`
	ReviewedAt    *time.Time       `json:"reviewed_at,omitempty"`
	AdminComments *string          `json:"admin_comments,omitempty"`
}

// ToResponse projects the entity (including joined display fields) into the
// API shape.
func ToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            lr.ID,
		LeaveType:     lr.LeaveType,
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		TotalDays:     lr.TotalDays,
		Reason:        lr.Reason,
		Status:        lr.Status,
		AppliedDate:   lr.AppliedDate,
		ReviewedBy:    lr.ReviewedBy,
		ReviewerName:  lr.ReviewerName,
		ReviewedAt:    lr.ReviewedAt,
		AdminComments: lr.AdminComments,
	}
	if lr.EmployeeName != nil {
		resp.Employee = &user.Projection{
			ID:           lr.EmployeeID,
			Name:         strings.TrimSpace(*lr.EmployeeName),
			EmployeeCode: lr.EmployeeCode,
		}
		if lr.EmployeeEmail != nil {
			resp.Employee.Email = *lr.EmployeeEmail
		}
	}
	return resp
}

// Stats is the count-by-status aggregation.
type Stats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
