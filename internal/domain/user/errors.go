package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
)
