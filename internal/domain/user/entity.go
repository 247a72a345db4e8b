package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is the account record owned by the external auth system. This service
// reads it for assignee validation and display projections only.
type User struct {
	ID           string
	Name         string
	Email        string
	EmployeeCode *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the resolved identity of the caller, extracted from verified JWT
// claims. It is trusted input: authentication happened upstream.
type Actor struct {
	ID   string
	Name string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsEmployee() bool {
	return a.Role == RoleEmployee
}

// Projection is the display-capable subset of a user embedded in responses.
type Projection struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}
