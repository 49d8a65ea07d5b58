package leave

import "time"

type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeOther     LeaveType = "other"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeVacation, LeaveTypeSick, LeaveTypePersonal,
		LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeOther:
		return true
	}
	return false
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsFinal reports whether s is a decision an approver can record
func (s LeaveStatus) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Leave struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Status     LeaveStatus
	Reason     *string
	ApprovedBy *string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (l Leave) IsPending() bool {
	return l.Status == StatusPending
}

// TotalDays counts calendar days, both ends inclusive
func (l Leave) TotalDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
