package announcement

import (
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// AnnouncementRequest is used for both create and full update
type AnnouncementRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Priority  Priority `json:"priority,omitempty"`
	ExpiresAt *string  `json:"expires_at,omitempty"`

	ExpiresAtParsed *time.Time `json:"-"`
}

func (r *AnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if !validator.MaxLength(r.Title, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	if r.Priority == "" {
		r.Priority = PriorityMedium
	} else if !r.Priority.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	r.ExpiresAtParsed = nil
	if r.ExpiresAt != nil && *r.ExpiresAt != "" {
		t, ok := validator.IsValidDateTime(*r.ExpiresAt)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an ISO8601 timestamp (e.g. 2024-01-15T10:30:00Z)",
			})
		} else {
			r.ExpiresAtParsed = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AnnouncementFilter struct {
	Priority       *Priority
	IncludeExpired bool
	Skip           int
	Limit          int

	// Now is the reference time for expiry; set by the service
	Now time.Time
}

func (f *AnnouncementFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Priority != nil && !f.Priority.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
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

type AnnouncementResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"author_id"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func NewAnnouncementResponse(a Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  a.AuthorID,
		Priority:  a.Priority,
		CreatedAt: a.CreatedAt,
		ExpiresAt: a.ExpiresAt,
	}
}

type ListAnnouncementResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Skip          int                    `json:"skip"`
	Limit         int                    `json:"limit"`
	Announcements []AnnouncementResponse `json:"announcements"`
}
