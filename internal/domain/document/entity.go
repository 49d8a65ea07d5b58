package document

import "time"

type Document struct {
	ID          string
	Name        string
	Description *string
	FilePath    string
	Category    *string
	UploadedBy  string
	CreatedAt   time.Time
}
