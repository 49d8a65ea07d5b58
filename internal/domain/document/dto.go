package document

import (
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type UploadDocumentRequest struct {
	File        io.Reader
	Filename    string
	ContentType string
	Name        *string
	Description *string
	Category    *string
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || validator.IsEmpty(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
	}
	if r.Name != nil {
		if name := strings.TrimSpace(*r.Name); name == "" {
			r.Name = nil
		} else if !validator.MaxLength(name, 255) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}
	if r.Name == nil && !validator.MaxLength(r.Filename, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "filename must not exceed 255 characters",
		})
	}
	if r.Category != nil && !validator.MaxLength(*r.Category, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DisplayName falls back to the uploaded filename
func (r *UploadDocumentRequest) DisplayName() string {
	if r.Name != nil {
		return strings.TrimSpace(*r.Name)
	}
	return r.Filename
}

type DocumentFilter struct {
	Category *string
	Search   *string
	Skip     int
	Limit    int
}

func (f *DocumentFilter) Validate() error {
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

type DocumentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	FilePath    string    `json:"file_path"`
	Category    *string   `json:"category"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewDocumentResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		FilePath:    d.FilePath,
		Category:    d.Category,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

type ListDocumentResponse struct {
	TotalCount int64              `json:"total_count"`
	Skip       int                `json:"skip"`
	Limit      int                `json:"limit"`
	Documents  []DocumentResponse `json:"documents"`
}
