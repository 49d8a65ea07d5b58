package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/storage"
	"github.com/cmlabs-hris/employee-hub-go/internal/service/file"
	"github.com/google/uuid"
)

type DocumentServiceImpl struct {
	documentRepo document.DocumentRepository
	fileService  file.FileService
}

func NewDocumentService(documentRepo document.DocumentRepository, fileService file.FileService) document.DocumentService {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		fileService:  fileService,
	}
}

// ListDocuments implements document.DocumentService.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, filter document.DocumentFilter) (document.ListDocumentResponse, error) {
	if err := filter.Validate(); err != nil {
		return document.ListDocumentResponse{}, err
	}

	documents, total, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		return document.ListDocumentResponse{}, fmt.Errorf("failed to list documents: %w", err)
	}

	responses := make([]document.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		responses = append(responses, document.NewDocumentResponse(d))
	}

	return document.ListDocumentResponse{
		TotalCount: total,
		Skip:       filter.Skip,
		Limit:      filter.Limit,
		Documents:  responses,
	}, nil
}

// GetDocument implements document.DocumentService.
func (s *DocumentServiceImpl) GetDocument(ctx context.Context, id string) (document.DocumentResponse, error) {
	d, err := s.getByID(ctx, id)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.NewDocumentResponse(d), nil
}

// OpenDocument implements document.DocumentService.
func (s *DocumentServiceImpl) OpenDocument(ctx context.Context, id string) (document.Document, io.ReadCloser, error) {
	d, err := s.getByID(ctx, id)
	if err != nil {
		return document.Document{}, nil, err
	}

	rc, err := s.fileService.Open(ctx, d.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return document.Document{}, nil, document.ErrFileNotFound
		}
		return document.Document{}, nil, fmt.Errorf("failed to open document file: %w", err)
	}
	return d, rc, nil
}

// UploadDocument implements document.DocumentService.
func (s *DocumentServiceImpl) UploadDocument(ctx context.Context, req document.UploadDocumentRequest, actor user.User) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	key, err := s.fileService.UploadDocument(ctx, req.File, filepath.Base(req.Filename), req.ContentType)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		s.discardBlob(ctx, key)
		return document.DocumentResponse{}, fmt.Errorf("failed to generate document id: %w", err)
	}

	created, err := s.documentRepo.Create(ctx, document.Document{
		ID:          id.String(),
		Name:        req.DisplayName(),
		Description: req.Description,
		FilePath:    key,
		Category:    req.Category,
		UploadedBy:  actor.ID,
	})
	if err != nil {
		s.discardBlob(ctx, key)
		return document.DocumentResponse{}, fmt.Errorf("failed to create document: %w", err)
	}

	return document.NewDocumentResponse(created), nil
}

// DeleteDocument implements document.DocumentService.
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, id string, actor user.User) error {
	d, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(d.UploadedBy) {
		return document.ErrNotAuthorizedToDelete
	}

	// Blob removal is best effort, the row is the source of truth
	s.discardBlob(ctx, d.FilePath)

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *DocumentServiceImpl) discardBlob(ctx context.Context, key string) {
	if err := s.fileService.DeleteFile(ctx, key); err != nil {
		slog.Warn("failed to delete document file", "path", key, "error", err)
	}
}

func (s *DocumentServiceImpl) getByID(ctx context.Context, id string) (document.Document, error) {
	d, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}
