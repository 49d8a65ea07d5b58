package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, emp := range r.store.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, emp := range r.store.employees {
		if emp.UserID == newEmployee.UserID {
			return employee.Employee{}, employee.ErrProfileAlreadyExists
		}
	}
	r.store.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	optional := func(value string) *string {
		if value == "" {
			return nil
		}
		return &value
	}

	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		emp.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		emp.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		emp.Phone = optional(*req.Phone)
	}
	if req.Department != nil {
		emp.Department = optional(*req.Department)
	}
	if req.Position != nil {
		emp.Position = optional(*req.Position)
	}
	if req.HireDate != nil {
		emp.HireDate = nil
		if *req.HireDate != "" {
			hireDate, err := time.Parse(time.DateOnly, *req.HireDate)
			if err != nil {
				return err
			}
			emp.HireDate = &hireDate
		}
	}
	if req.AvatarURL != nil {
		emp.AvatarURL = optional(*req.AvatarURL)
	}

	r.store.employees[id] = emp
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.store.employees, id)

	// Same effect as the ON DELETE CASCADE / SET NULL foreign keys
	for leaveID, l := range r.store.leaves {
		if l.EmployeeID == id {
			delete(r.store.leaves, leaveID)
			continue
		}
		if l.ApprovedBy != nil && *l.ApprovedBy == id {
			l.ApprovedBy = nil
			r.store.leaves[leaveID] = l
		}
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]employee.Employee, 0)
	for _, emp := range r.store.employees {
		if filter.Department != nil && *filter.Department != "" &&
			(emp.Department == nil || *emp.Department != *filter.Department) {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			s := *filter.Search
			if !containsFold(emp.FirstName, s) && !containsFold(emp.LastName, s) && !containsFold(emp.Email, s) {
				continue
			}
		}
		matched = append(matched, emp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return page(matched, filter.Skip, filter.Limit), int64(len(matched)), nil
}
