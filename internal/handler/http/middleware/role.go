package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/handler/http/response"
)

// RequireRole allows the request through when the authenticated user holds one of roles
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := UserFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !current.HasRole(roles...) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(user.RoleManager, user.RoleAdmin)(next)
}
