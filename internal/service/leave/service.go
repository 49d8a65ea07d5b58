package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	transactor   database.Transactor
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(
	transactor database.Transactor,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		transactor:   transactor,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// actingEmployee resolves the actor's employee profile; ok is false when none exists
func (s *LeaveServiceImpl) actingEmployee(ctx context.Context, actor user.User) (employee.Employee, bool, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, false, nil
		}
		return employee.Employee{}, false, fmt.Errorf("failed to resolve employee profile: %w", err)
	}
	return emp, true, nil
}

// canSeeAll reports whether the actor may read every leave request
func canSeeAll(actor user.User) bool {
	return actor.IsManager()
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter, actor user.User) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	result := leave.ListLeaveResponse{
		Skip:   filter.Skip,
		Limit:  filter.Limit,
		Leaves: []leave.LeaveResponse{},
	}

	filter.EmployeeID = nil
	if !canSeeAll(actor) {
		emp, ok, err := s.actingEmployee(ctx, actor)
		if err != nil {
			return leave.ListLeaveResponse{}, err
		}
		if !ok {
			return result, nil
		}
		filter.EmployeeID = &emp.ID
	}

	leaves, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	result.TotalCount = total
	for _, l := range leaves {
		result.Leaves = append(result.Leaves, leave.NewLeaveResponse(l))
	}
	return result, nil
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string, actor user.User) (leave.LeaveResponse, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if !canSeeAll(actor) {
		emp, ok, err := s.actingEmployee(ctx, actor)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		if !ok || emp.ID != l.EmployeeID {
			return leave.LeaveResponse{}, leave.ErrNotAuthorizedToView
		}
	}

	return leave.NewLeaveResponse(l), nil
}

// CreateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest, actor user.User) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, ok, err := s.actingEmployee(ctx, actor)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !ok {
		return leave.LeaveResponse{}, leave.ErrEmployeeProfileRequired
	}

	// Same-day requests are allowed
	if req.EndDateParsed.Before(req.StartDateParsed) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to generate leave id: %w", err)
	}

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		ID:         id.String(),
		EmployeeID: emp.ID,
		LeaveType:  req.LeaveType,
		StartDate:  req.StartDateParsed,
		EndDate:    req.EndDateParsed,
		Status:     leave.StatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveResponse(created), nil
}

// ApproveLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, req leave.ApproveLeaveRequest, actor user.User) (leave.LeaveResponse, error) {
	if !actor.IsManager() {
		return leave.LeaveResponse{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var updated leave.Leave
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var approvedBy *string
		approver, ok, err := s.actingEmployee(txCtx, actor)
		if err != nil {
			return err
		}
		if ok {
			approvedBy = &approver.ID
		}

		// Compare-and-set: only a pending row takes the decision
		updated, err = s.leaveRepo.UpdateStatusIfPending(txCtx, req.ID, req.Status, approvedBy)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
				return err
			}
			return fmt.Errorf("failed to update leave status: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.NewLeaveResponse(updated), nil
}

// DeleteLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, id string, actor user.User) error {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to get leave request: %w", err)
	}

	ownerUserID := ""
	owner, err := s.employeeRepo.GetByID(ctx, l.EmployeeID)
	if err == nil {
		ownerUserID = owner.UserID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return fmt.Errorf("failed to resolve leave owner: %w", err)
	}

	if !actor.CanAccess(ownerUserID) {
		return leave.ErrNotAuthorizedToDelete
	}

	// Non-admin owners may only withdraw pending requests; the repository re-checks the status
	onlyPending := !actor.IsAdmin()
	if onlyPending && !l.IsPending() {
		return leave.ErrCannotDeleteProcessed
	}

	if err := s.leaveRepo.Delete(ctx, id, onlyPending); err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrCannotDeleteProcessed) {
			return err
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}
