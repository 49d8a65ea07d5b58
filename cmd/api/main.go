package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/config"
	appHTTP "github.com/cmlabs-hris/employee-hub-go/internal/handler/http"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/logger"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/storage"
	"github.com/cmlabs-hris/employee-hub-go/internal/repository/postgresql"
	announcementService "github.com/cmlabs-hris/employee-hub-go/internal/service/announcement"
	serviceAuth "github.com/cmlabs-hris/employee-hub-go/internal/service/auth"
	documentService "github.com/cmlabs-hris/employee-hub-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/employee-hub-go/internal/service/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/employee-hub-go/internal/service/leave"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(dsn); err != nil {
			return err
		}
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)

	authService := serviceAuth.NewAuthService(transactor, userRepo, employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, userRepo)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRepo, employeeRepo)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo)
	documentSvc := documentService.NewDocumentService(documentRepo, fileService)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.App.AllowedOrigins,
	}, JWTService, authService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Document:     appHTTP.NewDocumentHandler(documentSvc, cfg.Storage.MaxUploadSize),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
