// Command seed fills an empty database with sample employees, leave requests,
// announcements and documents. Everything goes through the services, so the
// data obeys the same rules as API traffic.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/config"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
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

const seedPassword = "password123"

var departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations"}

var positions = map[string][]string{
	"Engineering": {"Software Engineer", "Senior Developer", "Tech Lead", "DevOps Engineer"},
	"Marketing":   {"Marketing Manager", "Content Writer", "SEO Specialist", "Brand Manager"},
	"Sales":       {"Sales Representative", "Account Manager", "Sales Director", "Business Development"},
	"HR":          {"HR Manager", "Recruiter", "HR Coordinator", "Training Specialist"},
	"Finance":     {"Accountant", "Financial Analyst", "Controller", "Bookkeeper"},
	"Operations":  {"Operations Manager", "Project Manager", "Logistics Coordinator", "Admin Assistant"},
}

type person struct {
	firstName, lastName string
	role                user.Role
}

var people = []person{
	{"John", "Smith", user.RoleAdmin},
	{"Sarah", "Johnson", user.RoleManager},
	{"Michael", "Williams", user.RoleManager},
	{"Emily", "Brown", user.RoleEmployee},
	{"David", "Jones", user.RoleEmployee},
	{"Jessica", "Garcia", user.RoleEmployee},
	{"Daniel", "Martinez", user.RoleEmployee},
	{"Ashley", "Anderson", user.RoleEmployee},
	{"James", "Taylor", user.RoleEmployee},
	{"Amanda", "Thomas", user.RoleEmployee},
	{"Robert", "Jackson", user.RoleEmployee},
	{"Sophia", "White", user.RoleEmployee},
	{"William", "Harris", user.RoleEmployee},
	{"Olivia", "Martin", user.RoleEmployee},
	{"Christopher", "Lee", user.RoleEmployee},
}

var announcements = []announcement.AnnouncementRequest{
	{Title: "Welcome to 2025!", Content: "Happy New Year to all employees! We're excited to kick off another great year together. Let's make it our best year yet!", Priority: announcement.PriorityHigh},
	{Title: "Q1 Goals Announcement", Content: "Our Q1 objectives have been finalized. Please check with your department heads for specific team goals and KPIs.", Priority: announcement.PriorityHigh},
	{Title: "New Health Benefits", Content: "We're pleased to announce enhanced health benefits starting next month. This includes dental and vision coverage improvements.", Priority: announcement.PriorityMedium},
	{Title: "Office Holiday Schedule", Content: "Please note the upcoming holidays: Jan 1 (New Year), Jan 20 (MLK Day). The office will be closed on these dates.", Priority: announcement.PriorityMedium},
	{Title: "Team Building Event", Content: "Join us for our quarterly team building event on January 15th. Activities include bowling and dinner. RSVP by Jan 10.", Priority: announcement.PriorityLow},
	{Title: "IT System Maintenance", Content: "Scheduled maintenance this Saturday from 10 PM to 2 AM. Some systems may be temporarily unavailable.", Priority: announcement.PriorityMedium},
	{Title: "Parking Lot Update", Content: "The east parking lot will be repaved next week. Please use the west lot during this time.", Priority: announcement.PriorityLow},
}

type seedDocument struct {
	filename, description, category string
}

var documents = []seedDocument{
	{"Employee Handbook 2025.pdf", "Complete employee handbook with policies and procedures", "Policy"},
	{"Benefits Guide.pdf", "Comprehensive guide to employee benefits", "HR"},
	{"Code of Conduct.pdf", "Company code of conduct and ethics guidelines", "Policy"},
	{"Remote Work Policy.pdf", "Guidelines for remote and hybrid work arrangements", "Policy"},
	{"Expense Report Template.xlsx", "Template for submitting expense reports", "Finance"},
	{"Onboarding Checklist.pdf", "New employee onboarding checklist", "HR"},
	{"Security Guidelines.pdf", "IT security best practices", "IT"},
	{"Travel Policy.pdf", "Business travel policies and procedures", "Policy"},
}

var reasons = []string{"Family vacation", "Personal matters", "Medical appointment", "Wedding attendance", "Home repairs", ""}

var leaveTypes = []leave.LeaveType{
	leave.LeaveTypeVacation, leave.LeaveTypeSick, leave.LeaveTypePersonal,
	leave.LeaveTypeMaternity, leave.LeaveTypePaternity, leave.LeaveTypeOther,
}

type seeder struct {
	auth          auth.AuthService
	employees     employee.EmployeeService
	profiles      employee.EmployeeRepository
	leaves        leave.LeaveService
	announcements announcement.AnnouncementService
	documents     document.DocumentService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel))

	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	s := seeder{
		auth:          serviceAuth.NewAuthService(transactor, userRepo, employeeRepo, JWTService),
		employees:     employeeService.NewEmployeeService(transactor, employeeRepo, userRepo),
		profiles:      employeeRepo,
		leaves:        leaveService.NewLeaveService(transactor, postgresql.NewLeaveRepository(db), employeeRepo),
		announcements: announcementService.NewAnnouncementService(postgresql.NewAnnouncementRepository(db)),
		documents:     documentService.NewDocumentService(postgresql.NewDocumentRepository(db), file.NewFileService(fileStorage)),
	}

	if err := s.run(context.Background()); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

func (s seeder) run(ctx context.Context) error {
	users, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}
	admin := users[0]
	managers := []user.User{users[1], users[2]}

	if err := s.seedAnnouncements(ctx, admin); err != nil {
		return err
	}
	leaves, err := s.seedLeaves(ctx, users, managers)
	if err != nil {
		return err
	}
	if err := s.seedDocuments(ctx, admin); err != nil {
		return err
	}

	slog.Info("Seed completed",
		"users", len(users),
		"announcements", len(announcements),
		"leaves", leaves,
		"documents", len(documents),
	)
	fmt.Printf("\nLogin with any seeded email (e.g. %s) and password %q\n", admin.Email, seedPassword)
	return nil
}

func seedEmail(p person) string {
	return strings.ToLower(p.firstName + "." + p.lastName + "@company.com")
}

// seedUsers registers every person; registration derives the profile names from the email
func (s seeder) seedUsers(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0, len(people))
	var admin user.User

	for i, p := range people {
		email := seedEmail(p)
		if _, err := s.auth.Register(ctx, auth.RegisterRequest{Email: email, Password: seedPassword, Role: p.role}); err != nil {
			if errors.Is(err, auth.ErrEmailExists) {
				return nil, fmt.Errorf("database already seeded (%s exists)", email)
			}
			return nil, fmt.Errorf("register %s: %w", email, err)
		}
		u, err := s.auth.CurrentUser(ctx, email)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			admin = u
		}

		profile, err := s.profiles.GetByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("profile of %s: %w", email, err)
		}

		dept := departments[rand.Intn(len(departments))]
		position := positions[dept][rand.Intn(len(positions[dept]))]
		phone := fmt.Sprintf("+1-555-%d-%d", 100+rand.Intn(900), 1000+rand.Intn(9000))
		hireDate := time.Now().AddDate(0, 0, -(30 + rand.Intn(1470))).Format(time.DateOnly)
		if _, err := s.employees.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
			ID:         profile.ID,
			Phone:      &phone,
			Department: &dept,
			Position:   &position,
			HireDate:   &hireDate,
		}, admin); err != nil {
			return nil, fmt.Errorf("update profile of %s: %w", email, err)
		}

		users = append(users, u)
	}
	return users, nil
}

func (s seeder) seedAnnouncements(ctx context.Context, author user.User) error {
	for _, req := range announcements {
		if _, err := s.announcements.CreateAnnouncement(ctx, req, author); err != nil {
			return fmt.Errorf("create announcement %q: %w", req.Title, err)
		}
	}
	return nil
}

// seedLeaves submits 0-3 requests per user and lets a manager decide most of them
func (s seeder) seedLeaves(ctx context.Context, users []user.User, managers []user.User) (int, error) {
	decisions := []leave.LeaveStatus{"", leave.StatusApproved, leave.StatusApproved, leave.StatusRejected}
	created := 0

	for _, u := range users {
		for n := rand.Intn(4); n > 0; n-- {
			start := time.Now().AddDate(0, 0, rand.Intn(91)-30)
			end := start.AddDate(0, 0, 1+rand.Intn(10))
			req := leave.CreateLeaveRequest{
				LeaveType: leaveTypes[rand.Intn(len(leaveTypes))],
				StartDate: start.Format(time.DateOnly),
				EndDate:   end.Format(time.DateOnly),
			}
			if reason := reasons[rand.Intn(len(reasons))]; reason != "" {
				req.Reason = &reason
			}

			l, err := s.leaves.CreateLeave(ctx, req, u)
			if err != nil {
				return created, fmt.Errorf("create leave for %s: %w", u.Email, err)
			}
			created++

			decision := decisions[rand.Intn(len(decisions))]
			if decision == "" {
				continue
			}
			manager := managers[rand.Intn(len(managers))]
			if _, err := s.leaves.ApproveLeave(ctx, leave.ApproveLeaveRequest{ID: l.ID, Status: decision}, manager); err != nil {
				return created, fmt.Errorf("decide leave %s: %w", l.ID, err)
			}
		}
	}
	return created, nil
}

// seedDocuments uploads a small placeholder blob for each document
func (s seeder) seedDocuments(ctx context.Context, uploader user.User) error {
	for _, d := range documents {
		description, category := d.description, d.category
		content := fmt.Sprintf("%s\n\n%s\n", d.filename, d.description)
		if _, err := s.documents.UploadDocument(ctx, document.UploadDocumentRequest{
			File:        strings.NewReader(content),
			Filename:    d.filename,
			Description: &description,
			Category:    &category,
		}, uploader); err != nil {
			return fmt.Errorf("upload %q: %w", d.filename, err)
		}
	}
	return nil
}
