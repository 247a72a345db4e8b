package task

import (
	"time"

	"github.com/staffdesk/ems-backend-go/internal/domain/user"
	"github.com/staffdesk/ems-backend-go/internal/pkg/validator"
)

const (
	TitleMinLen        = 3
	TitleMaxLen        = 200
	DescriptionMaxLen  = 2000
	CategoryMaxLen     = 100
	SubmissionMaxLen   = 2000
	CommentMinLen      = 1
	CommentMaxLen      = 1000
	MaxSubmissionFiles = 20
)

// ============= Request DTOs =============

// CreateTaskRequest is the admin payload for assigning a new task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssignedTo  string  `json:"assigned_to"`
	Priority    *string `json:"priority"`
	DueDate     string  `json:"due_date"`
	Category    *string `json:"category"`
}

func (r CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	} else if !validator.TrimmedLenInRange(r.Title, TitleMinLen, TitleMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must be between 3 and 200 characters"})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	} else if !validator.TrimmedLenInRange(r.Description, 1, DescriptionMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 2000 characters"})
	}

	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{Field: "assigned_to", Message: "assigned employee is required"})
	}

	if r.Priority != nil && !IsValidPriority(*r.Priority) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "priority must be one of low, medium, high, urgent"})
	}

	if validator.IsEmpty(r.DueDate) {
		errs = append(errs, validator.ValidationError{Field: "due_date", Message: "due date is required"})
	} else if _, ok := validator.IsValidDate(r.DueDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "due_date", Message: "invalid date format, expected YYYY-MM-DD"})
	}

	if r.Category != nil && !validator.TrimmedLenInRange(*r.Category, 1, CategoryMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must be between 1 and 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateTaskRequest is a partial update. Pointer fields distinguish "absent"
// from "set to zero value", which matters for the per-role field rules.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
	Category    *string `json:"category"`

	SubmissionNote  *string   `json:"submission_note"`
	SubmissionFiles *[]string `json:"submission_files"`
}

// ChangedFields lists the JSON names of every field present in the payload,
// in declaration order.
func (r UpdateTaskRequest) ChangedFields() []string {
	var fields []string
	if r.Title != nil {
		fields = append(fields, "title")
	}
	if r.Description != nil {
		fields = append(fields, "description")
	}
	if r.AssignedTo != nil {
		fields = append(fields, "assigned_to")
	}
	if r.Priority != nil {
		fields = append(fields, "priority")
	}
	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.DueDate != nil {
		fields = append(fields, "due_date")
	}
	if r.Category != nil {
		fields = append(fields, "category")
	}
	if r.SubmissionNote != nil {
		fields = append(fields, "submission_note")
	}
	if r.SubmissionFiles != nil {
		fields = append(fields, "submission_files")
	}
	return fields
}

// employeeWritable is the set of fields the assignee may change. Everything
// else belongs to the assigning admin.
var employeeWritable = map[string]bool{
	"status":           true,
	"submission_note":  true,
	"submission_files": true,
}

// DisallowedForEmployee returns the supplied fields outside the assignee's
// writable set.
func (r UpdateTaskRequest) DisallowedForEmployee() []string {
	var out []string
	for _, f := range r.ChangedFields() {
		if !employeeWritable[f] {
			out = append(out, f)
		}
	}
	return out
}

func (r UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && !validator.TrimmedLenInRange(*r.Title, TitleMinLen, TitleMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must be between 3 and 200 characters"})
	}
	if r.Description != nil && !validator.TrimmedLenInRange(*r.Description, 1, DescriptionMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 2000 characters"})
	}
	if r.AssignedTo != nil && validator.IsEmpty(*r.AssignedTo) {
		errs = append(errs, validator.ValidationError{Field: "assigned_to", Message: "assigned employee cannot be empty"})
	}
	if r.Priority != nil && !IsValidPriority(*r.Priority) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "priority must be one of low, medium, high, urgent"})
	}
	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending, in_progress, completed, cancelled"})
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "invalid date format, expected YYYY-MM-DD"})
		}
	}
	if r.Category != nil && !validator.TrimmedLenInRange(*r.Category, 1, CategoryMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must be between 1 and 100 characters"})
	}
	if r.SubmissionNote != nil && !validator.TrimmedLenInRange(*r.SubmissionNote, 0, SubmissionMaxLen) {
		errs = append(errs, validator.ValidationError{Field: "submission_note", Message: "submission note must not exceed 2000 characters"})
	}
	if r.SubmissionFiles != nil {
		if len(*r.SubmissionFiles) > MaxSubmissionFiles {
			errs = append(errs, validator.ValidationError{Field: "submission_files", Message: "at most 20 submission files allowed"})
		}
		for _, f := range *r.SubmissionFiles {
			if validator.IsEmpty(f) {
				errs = append(errs, validator.ValidationError{Field: "submission_files", Message: "submission file references cannot be empty"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddCommentRequest appends one message to the task discussion.
type AddCommentRequest struct {
	Message string `json:"message"`
}

func (r AddCommentRequest) Validate() error {
	if validator.IsEmpty(r.Message) {
		return validator.ValidationErrors{{Field: "message", Message: "message is required"}}
	}
	if !validator.TrimmedLenInRange(r.Message, CommentMinLen, CommentMaxLen) {
		return validator.ValidationErrors{{Field: "message", Message: "message must not exceed 1000 characters"}}
	}
	return nil
}

// ListFilter is the query-string filter for task listings. AssignedTo only
// takes effect for admins; employee listings are always scoped to the caller.
type ListFilter struct {
	Status     *string
	Priority   *string
	Category   *string
	AssignedTo *string
}

func (f ListFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !IsValidStatus(*f.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status filter"})
	}
	if f.Priority != nil && !IsValidPriority(*f.Priority) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "unknown priority filter"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

type TaskResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Assignee    *user.Projection `json:"assignee,omitempty"`
	Assigner    *user.Projection `json:"assigner,omitempty"`
	Priority    Priority         `json:"priority"`
	Status      Status           `json:"status"`
	DueDate     string           `json:"due_date"`
	Category    string           `json:"category"`

	SubmissionNote  *string  `json:"submission_note,omitempty"`
	SubmissionFiles []string `json:"submission_files"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Comments []CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID        string           `json:"id"`
	Author    *user.Projection `json:"author,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

func ToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Priority:        t.Priority,
		Status:          t.Status,
		DueDate:         t.DueDate.Format("2006-01-02"),
		Category:        t.Category,
		SubmissionNote:  t.SubmissionNote,
		SubmissionFiles: t.SubmissionFiles,
		CompletedAt:     t.CompletedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if resp.SubmissionFiles == nil {
		resp.SubmissionFiles = []string{}
	}
	if t.AssigneeName != nil {
		resp.Assignee = &user.Projection{ID: t.AssignedTo, Name: *t.AssigneeName, EmployeeCode: t.AssigneeCode}
		if t.AssigneeEmail != nil {
			resp.Assignee.Email = *t.AssigneeEmail
		}
	}
	if t.AssignerName != nil {
		resp.Assigner = &user.Projection{ID: t.AssignedBy, Name: *t.AssignerName}
		if t.AssignerEmail != nil {
			resp.Assigner.Email = *t.AssignerEmail
		}
	}
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, ToCommentResponse(c))
	}
	return resp
}

func ToCommentResponse(c Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	if c.AuthorName != nil {
		resp.Author = &user.Projection{ID: c.AuthorID, Name: *c.AuthorName}
		if c.AuthorEmail != nil {
			resp.Author.Email = *c.AuthorEmail
		}
	}
	return resp
}

// Stats is the count-by-status aggregation. Admins see every task, employees
// only their own assignments.
type Stats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}
