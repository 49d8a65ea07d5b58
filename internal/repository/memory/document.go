package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
)

type documentRepository struct {
	store *Store
}

func NewDocumentRepository(store *Store) document.DocumentRepository {
	return &documentRepository{store: store}
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (document.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.documents[id]
	if !ok {
		return document.Document{}, document.ErrDocumentNotFound
	}
	return d, nil
}

func (r *documentRepository) Create(ctx context.Context, newDocument document.Document) (document.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newDocument.CreatedAt = r.store.Now()
	r.store.documents[newDocument.ID] = newDocument
	return newDocument, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.documents[id]; !ok {
		return document.ErrDocumentNotFound
	}
	delete(r.store.documents, id)
	return nil
}

func (r *documentRepository) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]document.Document, 0)
	for _, d := range r.store.documents {
		if filter.Category != nil && *filter.Category != "" &&
			(d.Category == nil || *d.Category != *filter.Category) {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			inDescription := d.Description != nil && containsFold(*d.Description, *filter.Search)
			if !containsFold(d.Name, *filter.Search) && !inDescription {
				continue
			}
		}
		matched = append(matched, d)
	}
	newestFirst(matched,
		func(d document.Document) time.Time { return d.CreatedAt },
		func(d document.Document) string { return d.ID },
	)

	return page(matched, filter.Skip, filter.Limit), int64(len(matched)), nil
}
