package document

import "errors"

var (
	ErrDocumentNotFound      = errors.New("Document not found")
	ErrFileNotFound          = errors.New("File not found on server")
	ErrFileRequired          = errors.New("File is required")
	ErrNotAuthorizedToDelete = errors.New("Not authorized to delete this document")
)
