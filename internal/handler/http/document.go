package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
)

type DocumentHandler interface {
	ListDocuments(w http.ResponseWriter, r *http.Request)
	GetDocument(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	DeleteDocument(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.DocumentService
	maxUploadSize   int64
}

func NewDocumentHandler(documentService document.DocumentService, maxUploadSize int64) DocumentHandler {
	return &documentHandlerImpl{
		documentService: documentService,
		maxUploadSize:   maxUploadSize,
	}
}

// ListDocuments implements DocumentHandler
func (h *documentHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := document.DocumentFilter{
		Category: optionalQuery(r, "category"),
		Search:   optionalQuery(r, "search"),
		Skip:     skip,
		Limit:    limit,
	}

	result, err := h.documentService.ListDocuments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Documents, listMeta(result.Skip, result.Limit, result.TotalCount))
}

// GetDocument implements DocumentHandler
func (h *documentHandlerImpl) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, document.ErrDocumentNotFound)
	if !ok {
		return
	}

	result, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadDocument implements DocumentHandler
func (h *documentHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, document.ErrDocumentNotFound)
	if !ok {
		return
	}

	doc, content, err := h.documentService.OpenDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, document.ErrFileNotFound) {
			slog.Warn("Document blob missing", "document_id", id)
		}
		response.HandleError(w, err)
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(path.Ext(doc.FilePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": downloadName(doc),
	}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		slog.Error("DownloadDocument stream error", "error", err, "document_id", id)
	}
}

// downloadName is the display name, given the stored extension when it lacks one
func downloadName(doc document.Document) string {
	name := doc.Name
	ext := path.Ext(doc.FilePath)
	if ext != "" && !strings.EqualFold(path.Ext(name), ext) {
		name += ext
	}
	return name
}

// UploadDocument implements DocumentHandler
func (h *documentHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.RequestEntityTooLarge(w, fmt.Sprintf("File exceeds the %d byte limit", h.maxUploadSize))
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, document.ErrFileRequired)
		return
	}
	defer file.Close()

	req := document.UploadDocumentRequest{
		File:        file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Name:        formOrQuery(r, "name"),
		Description: formOrQuery(r, "description"),
		Category:    formOrQuery(r, "category"),
	}

	result, err := h.documentService.UploadDocument(r.Context(), req, current)
	if err != nil {
		slog.Error("UploadDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", result)
}

// formOrQuery reads a multipart field, falling back to the query string
func formOrQuery(r *http.Request, key string) *string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return &v
	}
	return nil
}

// DeleteDocument implements DocumentHandler
func (h *documentHandlerImpl) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	current, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, document.ErrDocumentNotFound)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), id, current); err != nil {
		slog.Error("DeleteDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
