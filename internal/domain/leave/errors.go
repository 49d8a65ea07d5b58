package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrEmployeeProfileRequired      = errors.New("You must have an employee profile to submit leave requests")
	ErrInvalidDateRange             = errors.New("End date must be after start date")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request has already been processed")
	ErrCannotDeleteProcessed        = errors.New("Cannot delete a processed leave request")
	ErrNotAuthorizedToView          = errors.New("Not authorized to view this leave request")
	ErrNotAuthorizedToDelete        = errors.New("Not authorized to delete this leave request")
)
