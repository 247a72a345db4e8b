package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Type is the closed set of leave categories.
type Type string

const (
	TypeSick      Type = "sick"
	TypeCasual    Type = "casual"
	TypeEmergency Type = "emergency"
	TypeMaternity Type = "maternity"
	TypeVacation  Type = "vacation"
	TypeOther     Type = "other"
)

// AllTypes returns every valid leave type.
func AllTypes() []Type {
	return []Type{TypeSick, TypeCasual, TypeEmergency, TypeMaternity, TypeVacation, TypeOther}
}

// IsValidType reports whether t names a known leave type.
func IsValidType(t string) bool {
	for _, lt := range AllTypes() {
		if string(lt) == t {
			return true
		}
	}
	return false
}

// IsValidDecision reports whether s is a terminal resolution status.
func IsValidDecision(s string) bool {
	return s == string(StatusApproved) || s == string(StatusRejected)
}

// LeaveRequest entity. A request is created pending and resolved exactly once
// by an admin; approved and rejected are terminal.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	LeaveType Type
	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason string
	Status Status

	AppliedDate   time.Time
	ReviewedBy    *string
	ReviewedAt    *time.Time
	AdminComments *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeCode  *string
	ReviewerName  *string
}

// CalculateTotalDays returns the inclusive whole-day span between start and
// end. Both ends are truncated to day granularity first, so time-of-day never
// changes the count.
func CalculateTotalDays(startDate, endDate time.Time) int {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
