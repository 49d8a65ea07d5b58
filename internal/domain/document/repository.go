package document

import "context"

type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (Document, error)
	Create(ctx context.Context, newDocument Document) (Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DocumentFilter) ([]Document, int64, error)
}
