package leave

import "context"

type LeaveRepository interface {
	GetByID(ctx context.Context, id string) (Leave, error)
	Create(ctx context.Context, newLeave Leave) (Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, int64, error)

	// UpdateStatusIfPending sets the decision only while the row is still pending.
	// Returns ErrLeaveRequestAlreadyProcessed when another decision won.
	UpdateStatusIfPending(ctx context.Context, id string, status LeaveStatus, approvedBy *string) (Leave, error)

	// Delete removes the row; with onlyPending it refuses processed rows
	// with ErrCannotDeleteProcessed.
	Delete(ctx context.Context, id string, onlyPending bool) error
}
