package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("Employee not found")
	ErrUserNotFound          = errors.New("User not found")
	ErrProfileAlreadyExists  = errors.New("User already has an employee profile")
	ErrNotAuthorizedToUpdate = errors.New("Not authorized to update this employee")
)
