package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultDepartment = "Unassigned"
	defaultPosition   = "Employee"
)

type AuthServiceImpl struct {
	transactor database.Transactor
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(transactor database.Transactor, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		transactor:         transactor,
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest) (user.UserResponse, error) {
	// Hash outside the transaction, bcrypt is slow on purpose
	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		newUser     user.User
		newEmployee employee.Employee
	)
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByIDOrEmail(txCtx, nil, &registerReq.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return auth.ErrEmailExists
		}

		userID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}
		newUser, err = a.UserRepository.Create(txCtx, user.User{
			ID:           userID.String(),
			Email:        registerReq.Email,
			PasswordHash: hashedPassword,
			Role:         registerReq.Role,
		})
		if err != nil {
			// Lost a race with a concurrent registration
			if errors.Is(err, user.ErrUserEmailExists) {
				return auth.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		employeeID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate employee id: %w", err)
		}
		firstName, lastName := NamesFromEmail(registerReq.Email)
		department, position := defaultDepartment, defaultPosition
		hireDate := today()
		newEmployee, err = a.EmployeeRepository.Create(txCtx, employee.Employee{
			ID:         employeeID.String(),
			UserID:     newUser.ID,
			FirstName:  firstName,
			LastName:   lastName,
			Email:      registerReq.Email,
			Department: &department,
			Position:   &position,
			HireDate:   &hireDate,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	resp := user.NewUserResponse(newUser)
	resp.FirstName = &newEmployee.FirstName
	resp.LastName = &newEmployee.LastName
	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, actor user.User) (user.UserResponse, error) {
	resp := user.NewUserResponse(actor)

	emp, err := a.EmployeeRepository.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return resp, nil
		}
		return user.UserResponse{}, fmt.Errorf("failed to get employee profile: %w", err)
	}

	resp.FirstName = &emp.FirstName
	resp.LastName = &emp.LastName
	return resp, nil
}

// CurrentUser implements auth.AuthService.
func (a *AuthServiceImpl) CurrentUser(ctx context.Context, email string) (user.User, error) {
	u, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrInvalidToken
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// NamesFromEmail derives profile names from the local part of an email:
// "jane.doe@x" gives "Jane", "Doe"; missing parts default to "New", "Employee".
func NamesFromEmail(email string) (string, string) {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || unicode.IsSpace(r)
	})

	firstName, lastName := "New", "Employee"
	if len(parts) > 0 {
		firstName = capitalize(parts[0])
	}
	if len(parts) > 1 {
		lastName = capitalize(parts[1])
	}
	return firstName, lastName
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
