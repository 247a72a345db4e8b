package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/staffdesk/ems-backend-go/internal/domain/leave"
	"github.com/staffdesk/ems-backend-go/internal/domain/notification"
	"github.com/staffdesk/ems-backend-go/internal/domain/task"
	"github.com/staffdesk/ems-backend-go/internal/domain/user"
	"github.com/staffdesk/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Field-level authorization failures carry the offending field names so
	// the UI can point at them.
	var fieldAuthErr *task.FieldAuthorizationError
	if errors.As(err, &fieldAuthErr) {
		ForbiddenWithDetails(w, "You are not allowed to update these fields", map[string]string{
			"fields": strings.Join(fieldAuthErr.Fields, ", "),
		})
		return
	}

	// State conflicts report the status the winning writer left behind.
	var reviewedErr *leave.AlreadyReviewedError
	if errors.As(err, &reviewedErr) {
		Conflict(w, "Leave request has already been reviewed, current status: "+string(reviewedErr.CurrentStatus))
		return
	}
	var stateErr *task.StateConflictError
	if errors.As(err, &stateErr) {
		Conflict(w, "Task was modified concurrently, current status: "+string(stateErr.CurrentStatus))
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, "Employee access required")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrEmployeeOnly):
		Forbidden(w, "Only employees can apply for leave")
	case errors.Is(err, leave.ErrAdminOnly):
		Forbidden(w, "Admin access required")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrNotParticipant):
		Forbidden(w, "You do not have access to this task")
	case errors.Is(err, task.ErrInvalidAssignee):
		BadRequest(w, "Assigned employee not found or inactive", nil)
	case errors.Is(err, task.ErrAdminOnly):
		Forbidden(w, "Admin access required")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
