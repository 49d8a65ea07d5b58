package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/storage"
	"github.com/cmlabs-hris/employee-hub-go/internal/repository/memory"
	announcementService "github.com/cmlabs-hris/employee-hub-go/internal/service/announcement"
	authService "github.com/cmlabs-hris/employee-hub-go/internal/service/auth"
	documentService "github.com/cmlabs-hris/employee-hub-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/employee-hub-go/internal/service/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/employee-hub-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	storage *storage.LocalStorage
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	transactor := memory.NewTransactor(store)
	userRepo := memory.NewUserRepository(store)
	employeeRepo := memory.NewEmployeeRepository(store)
	leaveRepo := memory.NewLeaveRepository(store)
	announcementRepo := memory.NewAnnouncementRepository(store)
	documentRepo := memory.NewDocumentRepository(store)

	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, 30*time.Minute)
	auth := authService.NewAuthService(transactor, userRepo, employeeRepo, jwtService)

	router := NewRouter(RouterConfig{
		Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
		AllowedOrigins: []string{"http://localhost:5173"},
	}, jwtService, auth, Handlers{
		Auth:         NewAuthHandler(auth),
		Employee:     NewEmployeeHandler(employeeService.NewEmployeeService(transactor, employeeRepo, userRepo)),
		Leave:        NewLeaveHandler(leaveService.NewLeaveService(transactor, leaveRepo, employeeRepo)),
		Announcement: NewAnnouncementHandler(announcementService.NewAnnouncementService(announcementRepo)),
		Document:     NewDocumentHandler(documentService.NewDocumentService(documentRepo, file.NewFileService(local)), 1<<20),
	})

	return &testAPI{t: t, handler: router, storage: local}
}

func (a *testAPI) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doJSON(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(a.t, err)
		body = bytes.NewReader(b)
	}
	return a.do(method, path, token, body, "application/json")
}

func (a *testAPI) register(email, password, role string) *httptest.ResponseRecorder {
	a.t.Helper()
	payload := map[string]string{"email": email, "password": password}
	if role != "" {
		payload["role"] = role
	}
	return a.doJSON(http.MethodPost, "/auth/register", "", payload)
}

func (a *testAPI) login(email, password string) *httptest.ResponseRecorder {
	a.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	return a.do(http.MethodPost, "/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// signUp registers and logs in, returning the access token
func (a *testAPI) signUp(email, role string) string {
	a.t.Helper()
	rec := a.register(email, "pw123", role)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.login(email, "pw123")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &token))
	return token.AccessToken
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Error, rec.Body.String())
	return env.Error.Detail
}

type leaveBody struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Status     string  `json:"status"`
	TotalDays  int     `json:"total_days"`
	ApprovedBy *string `json:"approved_by"`
}

func (a *testAPI) createLeave(token, start, end string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.doJSON(http.MethodPost, "/leaves", token, map[string]string{
		"leave_type": "vacation",
		"start_date": start,
		"end_date":   end,
	})
}

func TestRouter_HealthAndWelcome(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/auth/me", "/employees", "/leaves", "/announcements", "/documents"} {
		rec := api.do(http.MethodGet, path, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"), path)
	}

	rec := api.do(http.MethodGet, "/employees", "garbage", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", errorDetail(t, rec))
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	api := newTestAPI(t)
	employeeToken := api.signUp("bob@co.com", "")
	managerToken := api.signUp("mia.manager@co.com", "manager")

	rec := api.createLeave(employeeToken, "2025-01-10", "2025-01-12")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created leaveBody
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3, created.TotalDays)

	// employees cannot approve
	rec = api.doJSON(http.MethodPut, "/leaves/"+created.ID+"/approve", employeeToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.doJSON(http.MethodPut, "/leaves/"+created.ID+"/approve", managerToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved leaveBody
	decodeEnvelope(t, rec, &approved)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)

	rec = api.doJSON(http.MethodPut, "/leaves/"+created.ID+"/approve", managerToken, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Leave request has already been processed", errorDetail(t, rec))

	rec = api.do(http.MethodDelete, "/leaves/"+created.ID, employeeToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete a processed leave request", errorDetail(t, rec))

	rec = api.doJSON(http.MethodPut, "/leaves/"+created.ID+"/approve", managerToken, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_LeaveDateRange(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp("carol@co.com", "")

	rec := api.createLeave(token, "2025-03-05", "2025-03-04")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "End date must be after start date", errorDetail(t, rec))

	rec = api.createLeave(token, "2025-03-05", "2025-03-05")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created leaveBody
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, 1, created.TotalDays)

	rec = api.createLeave(token, "05/03/2025", "2025-03-05")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// pending leaves can be withdrawn by their owner
	rec = api.do(http.MethodDelete, "/leaves/"+created.ID, token, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, "/leaves/"+created.ID, token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_LeaveVisibility(t *testing.T) {
	api := newTestAPI(t)
	dave := api.signUp("dave@co.com", "")
	erin := api.signUp("erin@co.com", "")
	manager := api.signUp("max@co.com", "manager")
	admin := api.signUp("root@co.com", "admin")

	require.Equal(t, http.StatusCreated, api.createLeave(dave, "2025-02-01", "2025-02-02").Code)
	rec := api.createLeave(erin, "2025-02-03", "2025-02-04")
	require.Equal(t, http.StatusCreated, rec.Code)
	var erinLeave leaveBody
	decodeEnvelope(t, rec, &erinLeave)

	rec = api.do(http.MethodGet, "/leaves", dave, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var own []leaveBody
	env := decodeEnvelope(t, rec, &own)
	require.Len(t, own, 1)
	assert.NotEqual(t, erinLeave.EmployeeID, own[0].EmployeeID)
	assert.Equal(t, int64(1), env.Meta.TotalItems)

	for _, token := range []string{manager, admin} {
		rec = api.do(http.MethodGet, "/leaves", token, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var all []leaveBody
		env = decodeEnvelope(t, rec, &all)
		assert.Len(t, all, 2)
		assert.Equal(t, 100, env.Meta.Limit)
	}

	rec = api.do(http.MethodGet, "/leaves/"+erinLeave.ID, dave, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(http.MethodDelete, "/leaves/"+erinLeave.ID, dave, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/leaves?status=approved", manager, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var none []leaveBody
	decodeEnvelope(t, rec, &none)
	assert.Empty(t, none)

	rec = api.do(http.MethodGet, "/leaves?status=cancelled", manager, nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_Employees(t *testing.T) {
	api := newTestAPI(t)
	admin := api.signUp("root@co.com", "admin")
	frank := api.signUp("frank.ocean@co.com", "")
	api.signUp("grace.hopper@co.com", "")

	rec := api.do(http.MethodGet, "/employees?search=HOPPER", frank, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found []struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	env := decodeEnvelope(t, rec, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Grace", found[0].FirstName)
	assert.Equal(t, int64(1), env.Meta.TotalItems)
	graceID := found[0].ID

	rec = api.do(http.MethodGet, "/employees?search=frank", frank, nil, "")
	decodeEnvelope(t, rec, &found)
	require.Len(t, found, 1)
	frankID := found[0].ID

	// self update
	rec = api.doJSON(http.MethodPut, "/employees/"+frankID, frank, map[string]string{"department": "Engineering"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Department *string `json:"department"`
		LastName   string  `json:"last_name"`
	}
	decodeEnvelope(t, rec, &updated)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Engineering", *updated.Department)
	assert.Equal(t, "Ocean", updated.LastName)

	// somebody else's profile
	rec = api.doJSON(http.MethodPut, "/employees/"+graceID, frank, map[string]string{"department": "Sales"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to update this employee", errorDetail(t, rec))

	rec = api.do(http.MethodGet, "/employees?department=Engineering", admin, nil, "")
	decodeEnvelope(t, rec, &found)
	assert.Len(t, found, 1)

	// admin-only routes
	rec = api.do(http.MethodDelete, "/employees/"+graceID, frank, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.doJSON(http.MethodPost, "/employees", frank, map[string]string{"first_name": "X", "last_name": "Y", "email": "x@co.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin already has a profile from registration
	rec = api.doJSON(http.MethodPost, "/employees", admin, map[string]string{"first_name": "X", "last_name": "Y", "email": "x@co.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodDelete, "/employees/"+graceID, admin, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, "/employees/"+graceID, admin, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee not found", errorDetail(t, rec))

	rec = api.do(http.MethodGet, "/employees/not-a-uuid", admin, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/employees?limit=5000", admin, nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = api.do(http.MethodGet, "/employees?skip=abc", admin, nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = api.do(http.MethodGet, "/employees?skip=1&limit=1", admin, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec, &found)
	assert.Len(t, found, 1)
	assert.Equal(t, int64(2), env.Meta.TotalItems)
	assert.Equal(t, 1, env.Meta.Skip)
}

func TestRouter_AnnouncementExpiry(t *testing.T) {
	api := newTestAPI(t)
	manager := api.signUp("mia@co.com", "manager")
	employee := api.signUp("ed@co.com", "")

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)

	for _, payload := range []map[string]interface{}{
		{"title": "Expired", "content": "old news", "expires_at": past},
		{"title": "Upcoming", "content": "party", "priority": "high", "expires_at": future},
		{"title": "Forever", "content": "handbook"},
	} {
		rec := api.doJSON(http.MethodPost, "/announcements", manager, payload)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	type announcementBody struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Priority string `json:"priority"`
	}

	rec := api.do(http.MethodGet, "/announcements", employee, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var active []announcementBody
	decodeEnvelope(t, rec, &active)
	require.Len(t, active, 2)
	assert.Equal(t, "Forever", active[0].Title)
	assert.Equal(t, "medium", active[0].Priority)

	rec = api.do(http.MethodGet, "/announcements?include_expired=true", employee, nil, "")
	var all []announcementBody
	decodeEnvelope(t, rec, &all)
	assert.Len(t, all, 3)

	rec = api.do(http.MethodGet, "/announcements?priority=high", employee, nil, "")
	var high []announcementBody
	decodeEnvelope(t, rec, &high)
	require.Len(t, high, 1)
	assert.Equal(t, "Upcoming", high[0].Title)

	rec = api.do(http.MethodGet, "/announcements?include_expired=maybe", employee, nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.doJSON(http.MethodPost, "/announcements", employee, map[string]string{"title": "Hi", "content": "me"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// another manager is not the author
	other := api.signUp("otto@co.com", "manager")
	rec = api.do(http.MethodDelete, "/announcements/"+high[0].ID, other, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to delete this announcement", errorDetail(t, rec))

	rec = api.doJSON(http.MethodPut, "/announcements/"+high[0].ID, manager, map[string]string{"title": "Upcoming party", "content": "friday"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodDelete, "/announcements/"+high[0].ID, manager, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, "/announcements/"+high[0].ID, manager, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRouter_DocumentLifecycle(t *testing.T) {
	api := newTestAPI(t)
	uploader := api.signUp("uma@co.com", "")
	other := api.signUp("olly@co.com", "")

	body, contentType := multipartUpload(t, "policy.pdf", "%PDF-1.7 policy", map[string]string{
		"name":     "Leave Policy",
		"category": "policies",
	})
	rec := api.do(http.MethodPost, "/documents/upload?description=Time+off+rules", uploader, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		FilePath    string  `json:"file_path"`
		Category    *string `json:"category"`
	}
	decodeEnvelope(t, rec, &doc)
	assert.Equal(t, "Leave Policy", doc.Name)
	require.NotNil(t, doc.Description)
	assert.Equal(t, "Time off rules", *doc.Description)
	require.NotNil(t, doc.Category)
	assert.Equal(t, "policies", *doc.Category)

	rec = api.do(http.MethodGet, "/documents?category=policies", other, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, int64(1), env.Meta.TotalItems)

	rec = api.do(http.MethodGet, "/documents/"+doc.ID+"/download", other, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.7 policy", rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Leave Policy.pdf")

	rec = api.do(http.MethodDelete, "/documents/"+doc.ID, other, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/documents/"+doc.ID, uploader, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	exists, err := api.storage.Exists(context.Background(), doc.FilePath)
	require.NoError(t, err)
	assert.False(t, exists)

	rec = api.do(http.MethodGet, "/documents/"+doc.ID, uploader, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Document not found", errorDetail(t, rec))
	rec = api.do(http.MethodGet, "/documents/"+doc.ID+"/download", uploader, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DocumentUploadErrors(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUp("uma@co.com", "")

	body, contentType := multipartUpload(t, "", "", map[string]string{"name": "No file"})
	rec := api.do(http.MethodPost, "/documents/upload", token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File is required", errorDetail(t, rec))

	body, contentType = multipartUpload(t, "big.bin", strings.Repeat("x", 2<<20), nil)
	rec = api.do(http.MethodPost, "/documents/upload", token, body, contentType)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// blob removed behind the registry's back
	body, contentType = multipartUpload(t, "notes.txt", "notes", nil)
	rec = api.do(http.MethodPost, "/documents/upload", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		FilePath string `json:"file_path"`
	}
	decodeEnvelope(t, rec, &doc)
	assert.Equal(t, "notes.txt", doc.Name)
	require.NoError(t, api.storage.Delete(context.Background(), doc.FilePath))

	rec = api.do(http.MethodGet, "/documents/"+doc.ID+"/download", token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found on server", errorDetail(t, rec))
}
