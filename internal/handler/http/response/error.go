package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		Conflict(w, auth.ErrEmailExists.Error())

	// Role checks
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Not enough permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrProfileAlreadyExists):
		Conflict(w, employee.ErrProfileAlreadyExists.Error())
	case errors.Is(err, employee.ErrNotAuthorizedToUpdate):
		Forbidden(w, employee.ErrNotAuthorizedToUpdate.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, leave.ErrLeaveRequestNotFound.Error())
	case errors.Is(err, leave.ErrEmployeeProfileRequired),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrCannotDeleteProcessed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotAuthorizedToView),
		errors.Is(err, leave.ErrNotAuthorizedToDelete):
		Forbidden(w, err.Error())

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, announcement.ErrAnnouncementNotFound.Error())
	case errors.Is(err, announcement.ErrNotAuthorizedToUpdate),
		errors.Is(err, announcement.ErrNotAuthorizedToDelete):
		Forbidden(w, err.Error())

	// Document domain errors
	case errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, document.ErrFileNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, document.ErrFileRequired):
		BadRequest(w, document.ErrFileRequired.Error(), nil)
	case errors.Is(err, document.ErrNotAuthorizedToDelete):
		Forbidden(w, document.ErrNotAuthorizedToDelete.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
