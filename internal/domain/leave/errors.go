package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrEmployeeOnly         = errors.New("only employees can apply for leave")
	ErrAdminOnly            = errors.New("admin access required")
)

// AlreadyReviewedError rejects a second resolution attempt. It carries the
// stored status so the caller can see which decision won.
type AlreadyReviewedError struct {
	CurrentStatus Status
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("leave request has already been reviewed, current status: %s", e.CurrentStatus)
}
