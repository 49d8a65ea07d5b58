package document

import (
	"context"
	"io"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

type DocumentService interface {
	ListDocuments(ctx context.Context, filter DocumentFilter) (ListDocumentResponse, error)
	GetDocument(ctx context.Context, id string) (DocumentResponse, error)

	// OpenDocument returns the metadata and an open blob; the caller closes it
	OpenDocument(ctx context.Context, id string) (Document, io.ReadCloser, error)

	// UploadDocument stores the blob under a generated key, then records the metadata
	UploadDocument(ctx context.Context, req UploadDocumentRequest, actor user.User) (DocumentResponse, error)

	// DeleteDocument removes blob and metadata (uploader OR admin)
	DeleteDocument(ctx context.Context, id string, actor user.User) error
}
