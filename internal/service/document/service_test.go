package document

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/storage"
	"github.com/cmlabs-hris/employee-hub-go/internal/repository/memory"
	"github.com/cmlabs-hris/employee-hub-go/internal/service/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	storage *storage.LocalStorage
	repo    document.DocumentRepository
	service document.DocumentService
}

func newDocumentFixture(t *testing.T) documentFixture {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)
	repo := memory.NewDocumentRepository(memory.NewStore())
	return documentFixture{
		storage: local,
		repo:    repo,
		service: NewDocumentService(repo, file.NewFileService(local)),
	}
}

func newActor(role user.Role) user.User {
	return user.User{ID: uuid.Must(uuid.NewV7()).String(), Email: string(role) + "@co.com", Role: role}
}

func strPtr(s string) *string { return &s }

func (f documentFixture) upload(t *testing.T, actor user.User, filename, content string, name, description, category *string) document.DocumentResponse {
	t.Helper()
	resp, err := f.service.UploadDocument(context.Background(), document.UploadDocumentRequest{
		File:        strings.NewReader(content),
		Filename:    filename,
		Name:        name,
		Description: description,
		Category:    category,
	}, actor)
	require.NoError(t, err)
	return resp
}

func TestDocumentService_Upload(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	actor := newActor(user.RoleEmployee)

	resp := f.upload(t, actor, "handbook.pdf", "%PDF-1.7", nil, nil, strPtr("policies"))
	assert.Equal(t, "handbook.pdf", resp.Name)
	assert.Equal(t, actor.ID, resp.UploadedBy)
	assert.True(t, strings.HasPrefix(resp.FilePath, "documents/"))
	assert.True(t, strings.HasSuffix(resp.FilePath, ".pdf"))

	exists, err := f.storage.Exists(ctx, resp.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)

	named := f.upload(t, actor, "handbook.pdf", "v2", strPtr("Employee Handbook"), nil, nil)
	assert.Equal(t, "Employee Handbook", named.Name)
	assert.NotEqual(t, resp.FilePath, named.FilePath)

	_, err = f.service.UploadDocument(ctx, document.UploadDocumentRequest{Filename: "x.txt"}, actor)
	assert.Error(t, err)
}

type failingDocumentRepo struct {
	document.DocumentRepository
}

func (failingDocumentRepo) Create(ctx context.Context, d document.Document) (document.Document, error) {
	return document.Document{}, errors.New("insert failed")
}

func TestDocumentService_Upload_RemovesBlobWhenInsertFails(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	var stored string
	spy := &spyFileService{FileService: file.NewFileService(f.storage), uploaded: &stored}
	svc := NewDocumentService(failingDocumentRepo{f.repo}, spy)

	_, err := svc.UploadDocument(ctx, document.UploadDocumentRequest{
		File:     strings.NewReader("data"),
		Filename: "data.csv",
	}, newActor(user.RoleAdmin))
	require.Error(t, err)
	require.NotEmpty(t, stored)

	exists, err := f.storage.Exists(ctx, stored)
	require.NoError(t, err)
	assert.False(t, exists)
}

type spyFileService struct {
	file.FileService
	uploaded *string
}

func (s *spyFileService) UploadDocument(ctx context.Context, r io.Reader, filename string, contentType string) (string, error) {
	key, err := s.FileService.UploadDocument(ctx, r, filename, contentType)
	*s.uploaded = key
	return key, err
}

func TestDocumentService_ListDocuments(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	actor := newActor(user.RoleManager)

	f.upload(t, actor, "a.pdf", "a", strPtr("Leave Policy"), strPtr("How to request time off"), strPtr("policies"))
	f.upload(t, actor, "b.pdf", "b", strPtr("Payroll calendar"), nil, strPtr("finance"))
	f.upload(t, actor, "c.pdf", "c", strPtr("Onboarding"), strPtr("First week POLICY overview"), nil)

	tests := []struct {
		name   string
		filter document.DocumentFilter
		want   []string
	}{
		{"all newest first", document.DocumentFilter{}, []string{"Onboarding", "Payroll calendar", "Leave Policy"}},
		{"category", document.DocumentFilter{Category: strPtr("finance")}, []string{"Payroll calendar"}},
		{"search name or description", document.DocumentFilter{Search: strPtr("policy")}, []string{"Onboarding", "Leave Policy"}},
		{"skip and limit", document.DocumentFilter{Skip: 1, Limit: 1}, []string{"Payroll calendar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.ListDocuments(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(resp.Documents))
			for _, d := range resp.Documents {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDocumentService_OpenDocument(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	resp := f.upload(t, newActor(user.RoleEmployee), "notes.txt", "meeting notes", nil, nil, nil)

	d, rc, err := f.service.OpenDocument(ctx, resp.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "notes.txt", d.Name)
	assert.Equal(t, "meeting notes", string(content))

	// blob removed behind the registry's back
	require.NoError(t, f.storage.Delete(ctx, resp.FilePath))
	_, _, err = f.service.OpenDocument(ctx, resp.ID)
	assert.ErrorIs(t, err, document.ErrFileNotFound)

	_, _, err = f.service.OpenDocument(ctx, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	uploader := newActor(user.RoleEmployee)
	other := newActor(user.RoleManager)
	admin := newActor(user.RoleAdmin)

	t.Run("uploader removes row and blob", func(t *testing.T) {
		resp := f.upload(t, uploader, "cv.pdf", "cv", nil, nil, nil)
		require.NoError(t, f.service.DeleteDocument(ctx, resp.ID, uploader))

		_, err := f.service.GetDocument(ctx, resp.ID)
		assert.ErrorIs(t, err, document.ErrDocumentNotFound)
		_, _, err = f.service.OpenDocument(ctx, resp.ID)
		assert.ErrorIs(t, err, document.ErrDocumentNotFound)

		exists, err := f.storage.Exists(ctx, resp.FilePath)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		resp := f.upload(t, uploader, "cv.pdf", "cv", nil, nil, nil)
		assert.ErrorIs(t, f.service.DeleteDocument(ctx, resp.ID, other), document.ErrNotAuthorizedToDelete)

		_, err := f.service.GetDocument(ctx, resp.ID)
		assert.NoError(t, err)
	})

	t.Run("admin deletes even when blob is already gone", func(t *testing.T) {
		resp := f.upload(t, uploader, "cv.pdf", "cv", nil, nil, nil)
		require.NoError(t, f.storage.Delete(ctx, resp.FilePath))

		require.NoError(t, f.service.DeleteDocument(ctx, resp.ID, admin))
		_, err := f.service.GetDocument(ctx, resp.ID)
		assert.ErrorIs(t, err, document.ErrDocumentNotFound)
	})
}
