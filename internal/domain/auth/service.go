package auth

import (
	"context"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

type AuthService interface {
	// Register creates the user and its employee profile in one transaction
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// Login verifies the password and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Me returns the acting user merged with its employee names
	Me(ctx context.Context, actor user.User) (user.UserResponse, error)

	// CurrentUser resolves the user behind a verified token subject
	CurrentUser(ctx context.Context, email string) (user.User, error)
}
