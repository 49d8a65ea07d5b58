package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
)

type leaveRepository struct {
	store *Store
}

func NewLeaveRepository(store *Store) leave.LeaveRepository {
	return &leaveRepository{store: store}
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveRequestNotFound
	}
	return l, nil
}

func (r *leaveRepository) Create(ctx context.Context, newLeave leave.Leave) (leave.Leave, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if newLeave.Status == "" {
		newLeave.Status = leave.StatusPending
	}
	newLeave.CreatedAt = r.store.Now()
	r.store.leaves[newLeave.ID] = newLeave
	return newLeave, nil
}

func (r *leaveRepository) UpdateStatusIfPending(ctx context.Context, id string, status leave.LeaveStatus, approvedBy *string) (leave.Leave, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveRequestNotFound
	}
	if !l.IsPending() {
		return leave.Leave{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	l.Status = status
	if approvedBy != nil {
		l.ApprovedBy = approvedBy
	}
	now := r.store.Now()
	l.UpdatedAt = &now
	r.store.leaves[id] = l
	return l, nil
}

func (r *leaveRepository) Delete(ctx context.Context, id string, onlyPending bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.leaves[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if onlyPending && !l.IsPending() {
		return leave.ErrCannotDeleteProcessed
	}
	delete(r.store.leaves, id)
	return nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]leave.Leave, 0)
	for _, l := range r.store.leaves {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		matched = append(matched, l)
	}
	newestFirst(matched,
		func(l leave.Leave) time.Time { return l.CreatedAt },
		func(l leave.Leave) string { return l.ID },
	)

	return page(matched, filter.Skip, filter.Limit), int64(len(matched)), nil
}
