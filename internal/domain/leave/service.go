package leave

import (
	"context"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

type LeaveService interface {
	// ListLeaves returns every request to admins and managers, own requests to employees
	ListLeaves(ctx context.Context, filter LeaveFilter, actor user.User) (ListLeaveResponse, error)
	GetLeave(ctx context.Context, id string, actor user.User) (LeaveResponse, error)
	CreateLeave(ctx context.Context, req CreateLeaveRequest, actor user.User) (LeaveResponse, error)

	// ApproveLeave records the decision exactly once (admin/manager only)
	ApproveLeave(ctx context.Context, req ApproveLeaveRequest, actor user.User) (LeaveResponse, error)
	DeleteLeave(ctx context.Context, id string, actor user.User) error
}
