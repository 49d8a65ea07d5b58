package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type CreateEmployeeRequest struct {
	UserID     *string `json:"user_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	errs = append(errs, validateName("first_name", r.FirstName)...)
	errs = append(errs, validateName("last_name", r.LastName)...)

	r.Email = strings.TrimSpace(r.Email)
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	errs = append(errs, validateOptional(r.Phone, r.Department, r.Position, r.HireDate, r.AvatarURL)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil {
		errs = append(errs, validateName("first_name", *r.FirstName)...)
	}
	if r.LastName != nil {
		errs = append(errs, validateName("last_name", *r.LastName)...)
	}
	if r.Email != nil && !validator.IsValidEmail(strings.TrimSpace(*r.Email)) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	errs = append(errs, validateOptional(r.Phone, r.Department, r.Position, r.HireDate, r.AvatarURL)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsEmpty reports whether no field was provided
func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil && r.Phone == nil &&
		r.Department == nil && r.Position == nil && r.HireDate == nil && r.AvatarURL == nil
}

func validateName(field, value string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(value) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	} else if !validator.MaxLength(value, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not exceed 100 characters",
		})
	}
	return errs
}

func validateOptional(phone, department, position, hireDate, avatarURL *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must contain 7-15 digits",
		})
	}
	if phone != nil && !validator.MaxLength(*phone, 20) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must not exceed 20 characters",
		})
	}
	if department != nil && !validator.MaxLength(*department, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 100 characters",
		})
	}
	if position != nil && !validator.MaxLength(*position, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not exceed 100 characters",
		})
	}
	if hireDate != nil {
		if _, ok := validator.IsValidDate(*hireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}
	if avatarURL != nil && !validator.MaxLength(*avatarURL, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar_url",
			Message: "avatar_url must not exceed 500 characters",
		})
	}

	return errs
}

type EmployeeFilter struct {
	Department *string
	Search     *string
	Skip       int
	Limit      int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

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

type EmployeeResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	HireDate   *string `json:"hire_date"`
	AvatarURL  *string `json:"avatar_url"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		AvatarURL:  e.AvatarURL,
	}
	if e.HireDate != nil {
		hireDate := e.HireDate.Format(time.DateOnly)
		resp.HireDate = &hireDate
	}
	return resp
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Skip       int                `json:"skip"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
