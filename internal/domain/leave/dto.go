package leave

import (
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type CreateLeaveRequest struct {
	LeaveType LeaveType `json:"leave_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    *string   `json:"reason,omitempty"`

	// Parsed by Validate
	StartDateParsed time.Time `json:"-"`
	EndDateParsed   time.Time `json:"-"`
}

// Validate checks field formats; the date ordering rule is enforced by the service
func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LeaveType == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !r.LeaveType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: vacation, sick, personal, maternity, paternity, other",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.StartDateParsed = d
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.EndDateParsed = d
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveLeaveRequest struct {
	ID     string      `json:"-"`
	Status LeaveStatus `json:"status"`
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !r.Status.IsFinal() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *LeaveStatus
	Skip       int
	Limit      int
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}
	if f.Skip < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "skip",
			Message: "skip must not be negative",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit < 0 || f.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 1000",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveResponse struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	LeaveType  LeaveType   `json:"leave_type"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	TotalDays  int         `json:"total_days"`
	Status     LeaveStatus `json:"status"`
	Reason     *string     `json:"reason"`
	ApprovedBy *string     `json:"approved_by"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  *time.Time  `json:"updated_at"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(time.DateOnly),
		EndDate:    l.EndDate.Format(time.DateOnly),
		TotalDays:  l.TotalDays(),
		Status:     l.Status,
		Reason:     l.Reason,
		ApprovedBy: l.ApprovedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Skip       int             `json:"skip"`
	Limit      int             `json:"limit"`
	Leaves     []LeaveResponse `json:"leaves"`
}
