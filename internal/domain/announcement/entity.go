package announcement

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Announcement struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	Priority  Priority
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// IsActive reports whether the announcement is still visible at now
func (a Announcement) IsActive(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}
