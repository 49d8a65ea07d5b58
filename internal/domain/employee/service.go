package employee

import (
	"context"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists employees with department/search filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a profile for req.UserID, or for the acting admin when omitted (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest, actor user.User) (EmployeeResponse, error)

	// UpdateEmployee applies the provided fields (admin OR same employee)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest, actor user.User) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and its leave requests (admin only)
	DeleteEmployee(ctx context.Context, id string) error
}
