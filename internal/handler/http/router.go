package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Announcement AnnouncementHandler
	Document     DocumentHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authService auth.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"message": "Welcome to Employee Hub API"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	authRequired := middleware.AuthRequired(JWTService, authService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(authRequired).Get("/me", h.Auth.Me)
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(authRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Put("/{id}", h.Employee.UpdateEmployee)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Employee.CreateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", h.Leave.ListLeaves)
			r.Post("/", h.Leave.CreateLeave)
			r.Get("/{id}", h.Leave.GetLeave)
			r.Delete("/{id}", h.Leave.DeleteLeave)
			r.With(middleware.RequireManager).Put("/{id}/approve", h.Leave.ApproveLeave)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.Announcement.ListAnnouncements)
			r.Get("/{id}", h.Announcement.GetAnnouncement)

			// Author or admin checks happen in the service
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", h.Announcement.CreateAnnouncement)
				r.Put("/{id}", h.Announcement.UpdateAnnouncement)
				r.Delete("/{id}", h.Announcement.DeleteAnnouncement)
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.Document.ListDocuments)
			r.Post("/upload", h.Document.UploadDocument)
			r.Get("/{id}", h.Document.GetDocument)
			r.Get("/{id}/download", h.Document.DownloadDocument)
			r.Delete("/{id}", h.Document.DeleteDocument)
		})
	})

	return r
}
