package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/storage"
	"github.com/google/uuid"
)

const documentsDir = "documents"

type FileService interface {
	// UploadDocument stores a document blob under a generated key and returns the key
	UploadDocument(ctx context.Context, file io.Reader, filename string, contentType string) (string, error)

	// Open returns the stored blob; storage.ErrFileNotFound when it is gone
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Generic operations
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// DocumentKey builds documents/<uuid><ext>; only the extension of filename survives
func DocumentKey(filename string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate file key: %w", err)
	}
	return path.Join(documentsDir, id.String()+extension(filename)), nil
}

// extension keeps a short alphanumeric extension and drops anything else
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 16 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// UploadDocument uploads a document blob
func (s *fileServiceImpl) UploadDocument(ctx context.Context, file io.Reader, filename string, contentType string) (string, error) {
	key, err := DocumentKey(filename)
	if err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(key))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return uploadedPath, nil
}

// Open opens a stored file for streaming
func (s *fileServiceImpl) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidFilePath) {
			return nil, storage.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return rc, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, key, expiry)
}
